// ABOUTME: Extraction of favorite node ids from a shared favorites-list document
// ABOUTME: The payload is a JSON object with one flat id-list field

package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	cerrors "marketplace-client-api/core/errors"
	"marketplace-client-api/core/interfaces"
)

// listField is the flat field carrying the comma-separated node ids
const listField = "mpc_favorites"

// previewLimit bounds the payload excerpt carried on decode failures
const previewLimit = 2048

// FavoriteIDsFromList fetches an arbitrary favorites-list document and
// extracts the node ids it names. An absent document yields an empty list.
// A document without the id-list field, or one where the field holds a
// nested structure instead of a flat id string, is malformed content.
func FavoriteIDsFromList(ctx context.Context, transport interfaces.Transport, listURL string) ([]string, error) {
	body, err := transport.Stream(ctx, listURL)
	if err != nil {
		if cerrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return nil, &cerrors.TransientTransportError{URI: listURL, Cause: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &cerrors.MalformedContentError{URI: listURL, Preview: preview(raw), Cause: err}
	}

	field, ok := doc[listField]
	if !ok {
		return nil, &cerrors.MalformedContentError{
			URI:     listURL,
			Preview: preview(raw),
			Cause:   fmt.Errorf("field %q is absent", listField),
		}
	}

	var list string
	if err := json.Unmarshal(field, &list); err != nil {
		return nil, &cerrors.MalformedContentError{URI: listURL, Preview: preview(raw), Cause: err}
	}

	return sortedIDs(decodeIDs(list)), nil
}

func preview(raw []byte) string {
	s := string(raw)
	if len(s) > previewLimit {
		s = s[:previewLimit]
	}
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			if r == '\n' || r == '\t' {
				b.WriteRune(r)
			} else {
				b.WriteByte('?')
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

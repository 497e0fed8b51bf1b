package favorites

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	cerrors "marketplace-client-api/core/errors"
)

// docTransport serves one canned payload or error for any URI
type docTransport struct {
	payload string
	err     error
}

func (t *docTransport) Stream(ctx context.Context, uri string) (io.ReadCloser, error) {
	if t.err != nil {
		return nil, t.err
	}
	return io.NopCloser(strings.NewReader(t.payload)), nil
}

func (t *docTransport) Post(ctx context.Context, uri string, form url.Values) error {
	return nil
}

func TestFavoriteIDsFromList_ExtractsFlatIDField(t *testing.T) {
	transport := &docTransport{payload: `{"title":"my list","mpc_favorites":"30,10,20"}`}

	ids, err := FavoriteIDsFromList(context.Background(), transport, "https://m.example/list/1")
	if err != nil {
		t.Fatalf("FavoriteIDsFromList error: %v", err)
	}
	if len(ids) != 3 || ids[0] != "10" || ids[1] != "20" || ids[2] != "30" {
		t.Errorf("ids = %v", ids)
	}
}

func TestFavoriteIDsFromList_AbsentDocumentIsEmpty(t *testing.T) {
	transport := &docTransport{err: &cerrors.NotFoundError{Resource: "list", URI: "u"}}

	ids, err := FavoriteIDsFromList(context.Background(), transport, "https://m.example/list/1")
	if err != nil {
		t.Fatalf("FavoriteIDsFromList error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}

func TestFavoriteIDsFromList_MissingFieldIsMalformed(t *testing.T) {
	transport := &docTransport{payload: `{"title":"my list"}`}

	_, err := FavoriteIDsFromList(context.Background(), transport, "https://m.example/list/1")
	if !cerrors.IsMalformedContent(err) {
		t.Fatalf("error = %v, want MalformedContentError", err)
	}
}

func TestFavoriteIDsFromList_NestedFieldIsMalformed(t *testing.T) {
	transport := &docTransport{payload: `{"mpc_favorites":{"und":[{"nid":"10"}]}}`}

	_, err := FavoriteIDsFromList(context.Background(), transport, "https://m.example/list/1")
	if !cerrors.IsMalformedContent(err) {
		t.Fatalf("error = %v, want MalformedContentError", err)
	}
}

func TestFavoriteIDsFromList_NonJSONIsMalformed(t *testing.T) {
	transport := &docTransport{payload: `<html>maintenance page</html>`}

	_, err := FavoriteIDsFromList(context.Background(), transport, "https://m.example/list/1")
	var mc *cerrors.MalformedContentError
	if !asMalformedList(err, &mc) {
		t.Fatalf("error = %v, want MalformedContentError", err)
	}
	if !strings.Contains(mc.Preview, "maintenance") {
		t.Errorf("preview %q should carry the payload excerpt", mc.Preview)
	}
}

func asMalformedList(err error, target **cerrors.MalformedContentError) bool {
	if mc, ok := err.(*cerrors.MalformedContentError); ok {
		*target = mc
		return true
	}
	return false
}

func TestBlobCodec_RoundTrip(t *testing.T) {
	ids := decodeIDs("3, 1,,2")
	if len(ids) != 3 {
		t.Fatalf("decoded %d ids, want 3", len(ids))
	}
	if got := encodeIDs(ids); got != "1,2,3" {
		t.Errorf("encodeIDs = %q, want %q", got, "1,2,3")
	}
}

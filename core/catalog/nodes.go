// ABOUTME: Single and batch node resolution against the catalog service
// ABOUTME: Batch resolution is two-phase with partial success as the policy

package catalog

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"marketplace-client-api/core/domain"
	cerrors "marketplace-client-api/core/errors"
)

// GetNode resolves one node reference, by id when one is given and by url
// otherwise. The response must contain exactly one node.
func (s *Service) GetNode(ctx context.Context, node *domain.Node) (*domain.Node, error) {
	if node == nil || (node.ID == "" && node.URL == "") {
		return nil, errors.New("node reference needs an id or url")
	}

	var (
		mp  *domain.Marketplace
		uri string
		err error
	)
	if node.ID != "" {
		uri = "node/" + url.PathEscape(node.ID) + "/" + apiMarker
		mp, err = s.exec.Execute(ctx, uri, true)
	} else {
		uri = strings.TrimSuffix(node.URL, "/") + "/" + apiMarker
		mp, err = s.exec.ExecuteURL(ctx, uri, true)
	}
	if err != nil {
		return nil, err
	}
	if len(mp.Nodes) != 1 {
		return nil, &cerrors.UnexpectedResponseError{
			URI:     uri,
			Message: "expected exactly one node",
		}
	}
	return mp.Nodes[0], nil
}

// GetNodes resolves a collection of node references in two phases: one
// batched request for every reference carrying an id, then one sequential
// request per reference carrying a url. A reference present in both
// buckets is resolved twice and the by-id result wins. Unresolved
// references are omitted from the result and reported once at warning
// level; partial success is the policy, not a failure.
func (s *Service) GetNodes(ctx context.Context, nodes []*domain.Node) ([]*domain.Node, error) {
	var byID, byURL []*domain.Node
	for _, ref := range nodes {
		if ref == nil {
			continue
		}
		if ref.ID != "" {
			byID = append(byID, ref)
		}
		if ref.URL != "" {
			byURL = append(byURL, ref)
		}
	}

	resolvedByID, err := s.resolveByID(ctx, byID)
	if err != nil {
		return nil, err
	}

	resolvedByURL := make(map[string]*domain.Node, len(byURL))
	var failures []string
	for _, ref := range byURL {
		if ctx.Err() != nil {
			return nil, &cerrors.CancelledError{URI: ref.URL}
		}
		n, gerr := s.GetNode(ctx, &domain.Node{Identifiable: domain.Identifiable{URL: ref.URL}})
		if gerr != nil {
			if cerrors.IsCancelled(gerr) {
				return nil, gerr
			}
			failures = append(failures, ref.URL+": "+gerr.Error())
			continue
		}
		resolvedByURL[ref.URL] = n
	}

	out := make([]*domain.Node, 0, len(nodes))
	var missing []string
	for _, ref := range nodes {
		if ref == nil {
			continue
		}
		if ref.ID != "" {
			if n, ok := resolvedByID[ref.ID]; ok {
				out = append(out, n)
				continue
			}
		}
		if ref.URL != "" {
			if n, ok := resolvedByURL[ref.URL]; ok {
				out = append(out, n)
				continue
			}
		}
		missing = append(missing, domain.EntityKey(ref))
	}

	if len(missing) > 0 || len(failures) > 0 {
		s.warn("some nodes could not be resolved", map[string]interface{}{
			"requested": len(nodes),
			"resolved":  len(out),
			"missing":   strings.Join(missing, ", "),
			"failures":  strings.Join(failures, "; "),
		})
	}
	return out, nil
}

// resolveByID issues the single batched by-id request and maps the
// returned nodes back by id. A returned id outside the requested set fails
// the whole batch.
func (s *Service) resolveByID(ctx context.Context, refs []*domain.Node) (map[string]*domain.Node, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	requested := make(map[string]bool, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if requested[ref.ID] {
			continue
		}
		requested[ref.ID] = true
		ids = append(ids, url.PathEscape(ref.ID))
	}

	rel := "node/" + strings.Join(ids, ",") + "/" + apiMarker
	mp, err := s.exec.Execute(ctx, rel, true)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]*domain.Node, len(mp.Nodes))
	for _, n := range mp.Nodes {
		if !requested[n.ID] {
			return nil, &cerrors.UnexpectedResponseError{
				URI:     rel,
				Message: "response contained unrequested node id " + n.ID,
			}
		}
		resolved[n.ID] = n
	}
	return resolved, nil
}

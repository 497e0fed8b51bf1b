// ABOUTME: Best-effort install outcome reporting endpoints
// ABOUTME: Failures are logged and swallowed; only unbuildable requests surface

package catalog

import (
	"context"
	"net/url"
	"strings"

	"marketplace-client-api/core/domain"
	cerrors "marketplace-client-api/core/errors"
)

// ReportInstallError submits a form-encoded install failure report.
// Network and server failures are logged at warning level and swallowed; a
// request that cannot be built (no base URL) is returned.
func (s *Service) ReportInstallError(ctx context.Context, status string, statusMessage string, nodes []*domain.Node, ius []string, detail string) error {
	form := url.Values{}
	s.meta.FormFields(form)
	form.Set("status", status)
	form.Set("statusMessage", statusMessage)
	for _, n := range nodes {
		if n != nil && n.ID != "" {
			form.Add("node", n.ID)
		}
	}
	for _, iu := range ius {
		form.Add("iu", iu)
	}
	form.Set("detailedMessage", detail)

	err := s.exec.Post(ctx, "install/error/report", form)
	if err == nil {
		return nil
	}
	if cerrors.IsCancelled(err) {
		return nil
	}
	if isClassified(err) {
		s.warn("install error report was not delivered", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return err
}

// ReportInstallSuccess pings the node's success endpoint. Entirely fire
// and forget.
func (s *Service) ReportInstallSuccess(ctx context.Context, node *domain.Node) {
	if node == nil || node.URL == "" {
		return
	}
	uri := strings.TrimSuffix(node.URL, "/") + "/success"
	if err := s.exec.Get(ctx, uri); err != nil && !cerrors.IsCancelled(err) {
		s.debug("install success ping was not delivered", map[string]interface{}{
			"uri":   uri,
			"error": err.Error(),
		})
	}
}

// isClassified reports whether err belongs to the transport error
// taxonomy, as opposed to a local configuration problem.
func isClassified(err error) bool {
	return cerrors.IsNotFound(err) ||
		cerrors.IsServiceUnavailable(err) ||
		cerrors.IsNotAuthorized(err) ||
		cerrors.IsConflict(err) ||
		cerrors.IsTransientTransport(err) ||
		cerrors.IsConnectionProblem(err) ||
		cerrors.IsUnexpectedResponse(err) ||
		cerrors.IsMalformedContent(err)
}

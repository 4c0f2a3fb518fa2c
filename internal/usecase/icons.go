package usecase

import (
	"fmt"
	"net/url"
	"strings"
)

// IconResolver builds logo URLs from company names. The token is appended as a
// query parameter and is never logged.
type IconResolver struct {
	baseURL string
	token   string
}

func NewIconResolver(baseURL, token string) *IconResolver {
	return &IconResolver{baseURL: baseURL, token: token}
}

func (r *IconResolver) CompanyIcon(companyName string) string {
	name := url.PathEscape(strings.TrimSpace(companyName))
	u := fmt.Sprintf(r.baseURL, name)
	if r.token == "" {
		return u
	}
	return u + "?token=" + url.QueryEscape(r.token)
}

package okta

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/models"
)

const (
	usersPath = "/api/v1/users"

	// pageLimit is the page size requested from the API; Okta caps it at 200.
	pageLimit = 200
)

// Page is one page of the remote users collection. NextCursor is the opaque
// token for the following page, empty when the collection is exhausted.
type Page struct {
	Users      []models.RawUser
	NextCursor string
}

// ListUsersPage fetches a single page of users. An empty cursor starts the
// walk from the beginning; otherwise cursor must be a NextCursor obtained
// from a previous call.
func (c *Client) ListUsersPage(ctx context.Context, cursor string) (*Page, error) {
	target := cursor
	if target == "" {
		target = fmt.Sprintf("%s%s?limit=%d", c.baseURL, usersPath, pageLimit)
	}

	resp, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	var users []models.RawUser
	next := nextLink(resp.Header)
	if err := decode(resp, &users); err != nil {
		return nil, err
	}
	return &Page{Users: users, NextCursor: next}, nil
}

// GetUserByID fetches a single user by its id.
func (c *Client) GetUserByID(ctx context.Context, id string) (*models.RawUser, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+usersPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var user models.RawUser
	if err := decode(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a single user by profile email using a filter
// expression. A miss returns common.ErrNotFound.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.RawUser, error) {
	q := url.Values{}
	q.Set("filter", fmt.Sprintf("profile.email eq %q", email))
	q.Set("limit", "1")

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+usersPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var users []models.RawUser
	if err := decode(resp, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("okta: user %s: %w", email, common.ErrNotFound)
	}
	return &users[0], nil
}

// UpdateUser applies a partial profile update and returns the updated user.
func (c *Client) UpdateUser(ctx context.Context, id string, profile map[string]any) (*models.RawUser, error) {
	body := map[string]any{"profile": profile}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+usersPath+"/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}

	var user models.RawUser
	if err := decode(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user. Okta answers 204 on success.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.baseURL+usersPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// ResetPassword triggers the reset-password lifecycle operation with a
// notification email and returns the reset URL issued by Okta.
func (c *Client) ResetPassword(ctx context.Context, id string) (string, error) {
	target := fmt.Sprintf("%s%s/%s/lifecycle/reset_password?sendEmail=true", c.baseURL, usersPath, url.PathEscape(id))

	resp, err := c.do(ctx, http.MethodPost, target, nil)
	if err != nil {
		return "", err
	}

	var out struct {
		ResetPasswordURL string `json:"resetPasswordUrl"`
	}
	if err := decode(resp, &out); err != nil {
		return "", err
	}
	return out.ResetPasswordURL, nil
}

// nextLink extracts the rel="next" URL from RFC 5988 Link headers.
func nextLink(h http.Header) string {
	for _, value := range h.Values("Link") {
		for _, link := range strings.Split(value, ",") {
			parts := strings.Split(link, ";")
			if len(parts) < 2 {
				continue
			}
			target := strings.Trim(strings.TrimSpace(parts[0]), "<>")
			for _, param := range parts[1:] {
				if strings.TrimSpace(param) == `rel="next"` {
					return target
				}
			}
		}
	}
	return ""
}

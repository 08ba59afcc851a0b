package service

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/suhaib93102/CLM-Frontend/model"
)

const uploadsPath = APIV1 + "/private-uploads/"

func (c *Client) PrivateUploads(ctx context.Context) Response[List[model.PrivateUpload]] {
	return send[List[model.PrivateUpload]](ctx, c, http.MethodGet, uploadsPath, nil)
}

// PrivateUploadURL asks the backend for a short-lived download URL.
func (c *Client) PrivateUploadURL(ctx context.Context, key string) Response[model.PrivateUploadURL] {
	return send[model.PrivateUploadURL](ctx, c, http.MethodGet, withQuery(uploadsPath+"url/", url.Values{"key": {key}}), nil)
}

func (c *Client) DeletePrivateUpload(ctx context.Context, key string) Response[map[string]any] {
	return send[map[string]any](ctx, c, http.MethodDelete, withQuery(uploadsPath, url.Values{"key": {key}}), nil)
}

func (c *Client) UploadPrivate(ctx context.Context, filename string, content io.Reader) Response[model.PrivateUpload] {
	return sendMultipart[model.PrivateUpload](ctx, c, http.MethodPost, uploadsPath, "file", filename, content)
}

// Search runs a keyword search; extra params are merged after q.
func (c *Client) Search(ctx context.Context, query string, params url.Values) Response[List[model.SearchResult]] {
	full := url.Values{"q": {query}}
	for k, v := range params {
		full[k] = v
	}
	return send[List[model.SearchResult]](ctx, c, http.MethodGet, withQuery("/api/search/", full), nil)
}

func (c *Client) SemanticSearch(ctx context.Context, query string) Response[List[model.SearchResult]] {
	return send[List[model.SearchResult]](ctx, c, http.MethodGet, withQuery("/api/search/semantic/", url.Values{"q": {query}}), nil)
}

func (c *Client) AdvancedSearch(ctx context.Context, body map[string]any) Response[List[model.SearchResult]] {
	return send[List[model.SearchResult]](ctx, c, http.MethodPost, "/api/search/advanced/", body)
}

func (c *Client) SearchSuggestions(ctx context.Context, query string) Response[List[string]] {
	return send[List[string]](ctx, c, http.MethodGet, withQuery("/api/search/suggestions/", url.Values{"q": {query}}), nil)
}

func (c *Client) Documents(ctx context.Context) Response[List[model.Document]] {
	return send[List[model.Document]](ctx, c, http.MethodGet, "/api/documents/", nil)
}

func (c *Client) Repository(ctx context.Context) Response[List[model.Document]] {
	return send[List[model.Document]](ctx, c, http.MethodGet, "/api/repository/", nil)
}

func (c *Client) RepositoryFolders(ctx context.Context) Response[List[model.Folder]] {
	return send[List[model.Folder]](ctx, c, http.MethodGet, "/api/repository/folders/", nil)
}

func (c *Client) CreateFolder(ctx context.Context, name, parentID string) Response[model.Folder] {
	body := map[string]any{"name": name}
	if parentID != "" {
		body["parent_id"] = parentID
	}
	return send[model.Folder](ctx, c, http.MethodPost, "/api/repository/folders/", body)
}

func (c *Client) CreateMetadataField(ctx context.Context, f model.MetadataField) Response[model.MetadataField] {
	return send[model.MetadataField](ctx, c, http.MethodPost, "/api/metadata/fields/", f)
}

func (c *Client) MetadataFields(ctx context.Context) Response[List[model.MetadataField]] {
	return send[List[model.MetadataField]](ctx, c, http.MethodGet, "/api/metadata/fields/", nil)
}

func (c *Client) Health(ctx context.Context) Response[model.Health] {
	return send[model.Health](ctx, c, http.MethodGet, APIV1+"/health/", nil)
}

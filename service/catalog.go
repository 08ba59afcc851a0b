package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/suhaib93102/CLM-Frontend/model"
)

const (
	clausesPath       = APIV1 + "/clauses/"
	templatesPath     = APIV1 + "/contract-templates/"
	templateFilesPath = APIV1 + "/templates/files/"
	workflowsPath     = APIV1 + "/workflows/"
)

func (c *Client) Clauses(ctx context.Context, params url.Values) Response[List[model.Clause]] {
	return send[List[model.Clause]](ctx, c, http.MethodGet, withQuery(clausesPath, params), nil)
}

func (c *Client) CreateTemplate(ctx context.Context, t model.ContractTemplate) Response[model.ContractTemplate] {
	return send[model.ContractTemplate](ctx, c, http.MethodPost, templatesPath, t)
}

func (c *Client) Templates(ctx context.Context) Response[List[model.ContractTemplate]] {
	return send[List[model.ContractTemplate]](ctx, c, http.MethodGet, templatesPath, nil)
}

func (c *Client) Template(ctx context.Context, id string) Response[model.ContractTemplate] {
	return send[model.ContractTemplate](ctx, c, http.MethodGet, templatesPath+esc(id)+"/", nil)
}

func (c *Client) UpdateTemplate(ctx context.Context, id string, t model.ContractTemplate) Response[model.ContractTemplate] {
	return send[model.ContractTemplate](ctx, c, http.MethodPut, templatesPath+esc(id)+"/", t)
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) Response[map[string]any] {
	return send[map[string]any](ctx, c, http.MethodDelete, templatesPath+esc(id)+"/", nil)
}

// TemplateFile fetches a built-in template type. Public endpoint.
func (c *Client) TemplateFile(ctx context.Context, templateType string) Response[model.TemplateFile] {
	return send[model.TemplateFile](ctx, c, http.MethodGet, templateFilesPath+esc(templateType)+"/", nil, WithoutAuth())
}

// TemplateFiles lists file-backed templates. Public endpoint.
func (c *Client) TemplateFiles(ctx context.Context) Response[List[model.FileTemplate]] {
	return send[List[model.FileTemplate]](ctx, c, http.MethodGet, templateFilesPath, nil, WithoutAuth())
}

func (c *Client) CreateTemplateFile(ctx context.Context, t model.NewFileTemplate) Response[model.CreatedFileTemplate] {
	return send[model.CreatedFileTemplate](ctx, c, http.MethodPost, templateFilesPath, t)
}

func (c *Client) MyTemplateFiles(ctx context.Context) Response[List[model.FileTemplate]] {
	return send[List[model.FileTemplate]](ctx, c, http.MethodGet, templateFilesPath+"mine/", nil)
}

// TemplateFileContent reads one file-backed template. Public endpoint.
func (c *Client) TemplateFileContent(ctx context.Context, filename string) Response[model.FileTemplateContent] {
	return send[model.FileTemplateContent](ctx, c, http.MethodGet, templateFilesPath+"content/"+url.PathEscape(filename)+"/", nil, WithoutAuth())
}

func (c *Client) CreateWorkflow(ctx context.Context, w model.Workflow) Response[model.Workflow] {
	return send[model.Workflow](ctx, c, http.MethodPost, workflowsPath, w)
}

func (c *Client) Workflows(ctx context.Context) Response[List[model.Workflow]] {
	return send[List[model.Workflow]](ctx, c, http.MethodGet, workflowsPath, nil)
}

func (c *Client) Workflow(ctx context.Context, id string) Response[model.Workflow] {
	return send[model.Workflow](ctx, c, http.MethodGet, workflowsPath+esc(id)+"/", nil)
}

func (c *Client) UpdateWorkflow(ctx context.Context, id string, w model.Workflow) Response[model.Workflow] {
	return send[model.Workflow](ctx, c, http.MethodPut, workflowsPath+esc(id)+"/", w)
}

func (c *Client) DeleteWorkflow(ctx context.Context, id string) Response[map[string]any] {
	return send[map[string]any](ctx, c, http.MethodDelete, workflowsPath+esc(id)+"/", nil)
}

func (c *Client) WorkflowInstances(ctx context.Context, workflowID string) Response[List[model.WorkflowInstance]] {
	return send[List[model.WorkflowInstance]](ctx, c, http.MethodGet, workflowsPath+esc(workflowID)+"/instances/", nil)
}

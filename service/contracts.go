package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/suhaib93102/CLM-Frontend/model"
)

const contractsPath = APIV1 + "/contracts/"

func (c *Client) CreateContract(ctx context.Context, data model.ContractUpdate) Response[model.Contract] {
	return send[model.Contract](ctx, c, http.MethodPost, contractsPath, data)
}

// GenerateContract renders a new contract from a database template.
func (c *Client) GenerateContract(ctx context.Context, req model.GenerateRequest) Response[model.GenerateResponse] {
	req.Filename = ""
	normalizeGenerate(&req)
	return send[model.GenerateResponse](ctx, c, http.MethodPost, contractsPath+"generate/", req)
}

// GenerateContractFromFile renders a new contract from a file-backed template.
func (c *Client) GenerateContractFromFile(ctx context.Context, req model.GenerateRequest) Response[model.GenerateFromFileResponse] {
	req.TemplateID = ""
	normalizeGenerate(&req)
	return send[model.GenerateFromFileResponse](ctx, c, http.MethodPost, contractsPath+"generate-from-file/", req)
}

func normalizeGenerate(req *model.GenerateRequest) {
	if req.StructuredInputs == nil {
		req.StructuredInputs = map[string]any{}
	}
	if req.SelectedClauses == nil {
		req.SelectedClauses = []string{}
	}
}

func (c *Client) Contracts(ctx context.Context, params url.Values) Response[List[model.Contract]] {
	return send[List[model.Contract]](ctx, c, http.MethodGet, withQuery(contractsPath, params), nil)
}

func (c *Client) Contract(ctx context.Context, id string) Response[model.Contract] {
	return send[model.Contract](ctx, c, http.MethodGet, contractsPath+esc(id)+"/", nil)
}

func (c *Client) UpdateContract(ctx context.Context, id string, data model.ContractUpdate) Response[model.Contract] {
	return send[model.Contract](ctx, c, http.MethodPut, contractsPath+esc(id)+"/", data)
}

func (c *Client) DeleteContract(ctx context.Context, id string) Response[map[string]any] {
	return send[map[string]any](ctx, c, http.MethodDelete, contractsPath+esc(id)+"/", nil)
}

func (c *Client) CloneContract(ctx context.Context, id, newTitle string) Response[model.Contract] {
	return send[model.Contract](ctx, c, http.MethodPost, contractsPath+esc(id)+"/clone/", map[string]string{
		"title": newTitle,
	})
}

func (c *Client) ContractVersions(ctx context.Context, id string) Response[List[model.ContractVersion]] {
	return send[List[model.ContractVersion]](ctx, c, http.MethodGet, contractsPath+esc(id)+"/versions/", nil)
}

func (c *Client) CreateContractVersion(ctx context.Context, id, changeSummary string, selectedClauses []string) Response[model.ContractVersion] {
	if selectedClauses == nil {
		selectedClauses = []string{}
	}
	return send[model.ContractVersion](ctx, c, http.MethodPost, contractsPath+esc(id)+"/versions/", map[string]any{
		"change_summary":   changeSummary,
		"selected_clauses": selectedClauses,
	})
}

func (c *Client) ContractStatistics(ctx context.Context) Response[model.Statistics] {
	return send[model.Statistics](ctx, c, http.MethodGet, contractsPath+"statistics/", nil)
}

func (c *Client) RecentContracts(ctx context.Context, limit int) Response[List[model.Contract]] {
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	return send[List[model.Contract]](ctx, c, http.MethodGet, withQuery(contractsPath+"recent/", params), nil)
}

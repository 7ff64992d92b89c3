package adminsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListCompanies returns the companies visible to the caller.
func (s *Session) ListCompanies(ctx context.Context) ([]Company, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/companies", nil)
	if err != nil {
		return nil, err
	}

	var out CompanyListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Companies, nil
}

// GetCompany fetches a company. An empty id means the caller's own company.
func (s *Session) GetCompany(ctx context.Context, id string) (*Company, error) {
	path := "/v1/companies/get"
	if id != "" {
		path += "?id=" + url.QueryEscape(id)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out CompanyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Company, nil
}

// UpdateCompany patches a company. Requires the admin role of that company.
func (s *Session) UpdateCompany(ctx context.Context, req UpdateCompanyRequest) (*Company, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/companies/update", body)
	if err != nil {
		return nil, err
	}

	var out CompanyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Company, nil
}

// GetExtensionPolicy fetches the current extension policy of a company.
func (s *Session) GetExtensionPolicy(ctx context.Context, companyID string) (*ExtensionPolicy, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/companies/"+url.PathEscape(companyID)+"/extension-policy", nil)
	if err != nil {
		return nil, err
	}

	var out ExtensionPolicyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Policy, nil
}

// PutExtensionPolicy stores a new policy version.
func (s *Session) PutExtensionPolicy(ctx context.Context, companyID string, req PutExtensionPolicyRequest) (*ExtensionPolicy, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/companies/"+url.PathEscape(companyID)+"/extension-policy", body)
	if err != nil {
		return nil, err
	}

	var out ExtensionPolicyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Policy, nil
}

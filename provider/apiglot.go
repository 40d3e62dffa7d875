package provider

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/apiglot/apiglot"
)

// APIClient is the part of the Apiglot client the provider needs.
type APIClient interface {
	Translate(ctx context.Context, projectID string, payload any) (string, error)
}

// APIProvider sends whole pages to the translate endpoint of an Apiglot project.
type APIProvider struct {
	client    APIClient
	projectID string
}

// NewAPIProvider creates a provider translating through projectID.
func NewAPIProvider(client APIClient, projectID string) *APIProvider {
	return &APIProvider{client: client, projectID: projectID}
}

type sourceFile struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Created      string `json:"created"`
	LastModified string `json:"last_modified"`
	Content      string `json:"content"`
}

type translatePayload struct {
	BatchID          string     `json:"batch_id"`
	SourceFile       sourceFile `json:"source_file"`
	SourceLanguageID any        `json:"source_language_id"`
	TargetLanguageID any        `json:"target_language_id"`
}

// Translate posts the page and returns the translated document.
func (p *APIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	out, err := p.client.Translate(ctx, p.projectID, newPayload(req))
	if err != nil {
		return "", &apiglot.ProviderError{Message: "apiglot translate failed", Cause: err}
	}
	return out, nil
}

func newPayload(req TranslateRequest) translatePayload {
	return translatePayload{
		BatchID: req.BatchID,
		SourceFile: sourceFile{
			Name:         req.File.Name,
			Size:         req.File.Size,
			Created:      apiglot.Timestamp(req.File.Created),
			LastModified: req.File.LastModified,
			Content:      req.File.Content,
		},
		SourceLanguageID: languageID(req.Source.ID),
		TargetLanguageID: languageID(req.Target.ID),
	}
}

// languageID keeps numeric ids numeric on the wire.
func languageID(id string) any {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return json.Number(id)
	}
	return id
}

var _ Translator = (*APIProvider)(nil)

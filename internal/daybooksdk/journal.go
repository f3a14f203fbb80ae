package daybooksdk

import (
	"context"

	"github.com/imroc/req/v3"
)

const (
	v1JournalEntry = "/api/v1/journal/entry"
)

// JournalAPI reads and writes journal entries by date key
type JournalAPI struct {
	client *req.Client
}

func newJournalAPI(client *req.Client) *JournalAPI {
	return &JournalAPI{
		client: client,
	}
}

// GetEntry fetches the remote entry for a date key.
// Returns ErrEntryNotFound when the server has no entry for the key.
func (j *JournalAPI) GetEntry(ctx context.Context, params *GetEntryParams) (apiResp *EntryResponse, err error) {
	resp, err := j.client.R().
		SetContext(ctx).
		SetQueryParam("date", params.Date).
		SetSuccessResult(&apiResp).
		Get(v1JournalEntry)

	if err := handleAPIError(resp, err, "journal get entry"); err != nil {
		return nil, err
	}

	return apiResp, nil
}

// PutEntry creates or replaces the remote entry for a date key and returns
// the server-assigned update timestamp.
func (j *JournalAPI) PutEntry(ctx context.Context, params *PutEntryParams) (apiResp *PutEntryResponse, err error) {
	resp, err := j.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&apiResp).
		Put(v1JournalEntry)

	if err := handleAPIError(resp, err, "journal put entry"); err != nil {
		return nil, err
	}

	return apiResp, nil
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDistributorService is a mock implementation of service.DistributorService.
type MockDistributorService struct {
	mock.Mock
}

func (m *MockDistributorService) CreateInquiry(ctx context.Context, req *model.DistributorRequest) (*model.InquiryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InquiryResponse), args.Error(1)
}

func postInquiry(t *testing.T, h *DistributorHandler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/distributors", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestDistributorHandler_Create_Success(t *testing.T) {
	svc := new(MockDistributorService)
	svc.On("CreateInquiry", mock.Anything, mock.Anything).Return(&model.InquiryResponse{
		Success:   true,
		InquiryID: "DIST-2025-1700000000456",
		Message:   "Запитването е изпратено успешно.",
	}, nil)

	h := NewDistributorHandler(svc, zerolog.Nop())
	rec := postInquiry(t, h, []byte(`{"company": "Плод ЕООД", "phone": "+359888000111"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp model.InquiryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DIST-2025-1700000000456", resp.InquiryID)
}

func TestDistributorHandler_Create_ValidationFailure(t *testing.T) {
	svc := new(MockDistributorService)
	svc.On("CreateInquiry", mock.Anything, mock.Anything).Return(nil, &model.ValidationError{
		Details: map[string]model.FieldStatus{
			"company": model.FieldRequired,
			"phone":   model.FieldOK,
		},
	})

	h := NewDistributorHandler(svc, zerolog.Nop())
	rec := postInquiry(t, h, []byte(`{"phone": "+359888000111"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.FieldRequired, resp.Details["company"])
}

func TestDistributorHandler_Create_InternalError(t *testing.T) {
	svc := new(MockDistributorService)
	svc.On("CreateInquiry", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	h := NewDistributorHandler(svc, zerolog.Nop())
	rec := postInquiry(t, h, []byte(`{}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDistributorHandler_Create_InvalidBody(t *testing.T) {
	svc := new(MockDistributorService)
	h := NewDistributorHandler(svc, zerolog.Nop())

	rec := postInquiry(t, h, []byte(`{{`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateInquiry")
}

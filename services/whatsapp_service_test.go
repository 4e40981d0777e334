package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-feedback-server/apperrors"
	"sales-feedback-server/config"
)

func testWhatsAppConfig(baseURL string) config.WhatsAppConfig {
	return config.WhatsAppConfig{
		APIToken:      "test-token",
		GraphBaseURL:  baseURL,
		PhoneNumberID: "350164481523962",
		TemplateName:  "tvs_sales",
		TemplateLang:  "en",
	}
}

func TestSendFeedbackRequest(t *testing.T) {
	var received TemplateMessageRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/350164481523962/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewWhatsAppService(testWhatsAppConfig(srv.URL))
	err := svc.SendFeedbackRequest("+15551234567", "Ravi Kumar", "TVS Apache")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "whatsapp", received.MessagingProduct)
	assert.Equal(t, "+15551234567", received.To)
	assert.Equal(t, "template", received.Type)
	assert.Equal(t, "tvs_sales", received.Template.Name)
	assert.Equal(t, "en", received.Template.Language.Code)
	require.Len(t, received.Template.Components, 1)
	require.Len(t, received.Template.Components[0].Parameters, 2)
	assert.Equal(t, "Ravi Kumar", received.Template.Components[0].Parameters[0].Text)
	assert.Equal(t, "TVS Apache", received.Template.Components[0].Parameters[1].Text)
}

func TestSendFeedbackRequestEmptyVariables(t *testing.T) {
	var received TemplateMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewWhatsAppService(testWhatsAppConfig(srv.URL))
	require.NoError(t, svc.SendFeedbackRequest("+15551234567", "", ""))

	assert.Equal(t, "N/A", received.Template.Components[0].Parameters[0].Text)
	assert.Equal(t, "N/A", received.Template.Components[0].Parameters[1].Text)
}

func TestSendFeedbackRequestNotWhitelisted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Recipient phone number not in allowed list"}}`))
	}))
	defer srv.Close()

	svc := NewWhatsAppService(testWhatsAppConfig(srv.URL))
	err := svc.SendFeedbackRequest("+15551234567", "Ravi Kumar", "TVS Apache")
	require.Error(t, err)

	var provider *apperrors.ProviderError
	require.True(t, errors.As(err, &provider))
	assert.True(t, provider.NotWhitelisted)
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
}

func TestSendFeedbackRequestProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	svc := NewWhatsAppService(testWhatsAppConfig(srv.URL))
	err := svc.SendFeedbackRequest("+15551234567", "Ravi Kumar", "TVS Apache")
	require.Error(t, err)

	var provider *apperrors.ProviderError
	require.True(t, errors.As(err, &provider))
	assert.False(t, provider.NotWhitelisted)
	assert.Equal(t, http.StatusUnauthorized, provider.StatusCode)
}

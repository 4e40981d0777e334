package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-feedback-server/apperrors"
	"sales-feedback-server/models"
)

type sentMessage struct {
	To          string
	Name        string
	VehicleName string
}

type stubSender struct {
	err  error
	sent []sentMessage
}

func (s *stubSender) SendFeedbackRequest(to, name, vehicleName string) error {
	s.sent = append(s.sent, sentMessage{To: to, Name: name, VehicleName: vehicleName})
	return s.err
}

func newCustomerRouter(t *testing.T, sender *stubSender) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.RedirectTrailingSlash = false
	RegisterCustomerRoutes(router, sender)
	return router
}

func postCustomer(t *testing.T, router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/collect_sales_feedback/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func customerBody() map[string]any {
	return map[string]any{
		"name":             "Ravi Kumar",
		"phone_number":     "+15551234567",
		"vehicle_name":     "TVS Apache",
		"purchase_date":    "2024-05-01T00:00:00Z",
		"additional_notes": "repeat buyer",
	}
}

func TestCollectSalesFeedback(t *testing.T) {
	db := newTestDB(t)
	sender := &stubSender{}
	router := newCustomerRouter(t, sender)

	w := postCustomer(t, router, customerBody())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Feedback request sent successfully")

	var customer models.Customer
	require.NoError(t, db.Where("phone_number = ?", "+15551234567").First(&customer).Error)
	assert.Equal(t, "Ravi Kumar", customer.Name)
	assert.Equal(t, "TVS Apache", customer.VehicleName)
	require.NotNil(t, customer.AdditionalNotes)
	assert.Equal(t, "repeat buyer", *customer.AdditionalNotes)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, sentMessage{To: "+15551234567", Name: "Ravi Kumar", VehicleName: "TVS Apache"}, sender.sent[0])
}

func TestCollectSalesFeedbackDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	router := newCustomerRouter(t, &stubSender{})
	createTestCustomer(t, db, "+15551234567")

	w := postCustomer(t, router, customerBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCollectSalesFeedbackInvalidBody(t *testing.T) {
	newTestDB(t)
	router := newCustomerRouter(t, &stubSender{})

	w := postCustomer(t, router, map[string]any{"name": "Ravi Kumar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCollectSalesFeedbackInvalidPhone(t *testing.T) {
	newTestDB(t)
	sender := &stubSender{}
	router := newCustomerRouter(t, sender)

	body := customerBody()
	body["phone_number"] = "not-a-number"
	w := postCustomer(t, router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, sender.sent)
}

func TestCollectSalesFeedbackNotWhitelisted(t *testing.T) {
	db := newTestDB(t)
	sender := &stubSender{err: &apperrors.ProviderError{
		StatusCode:     http.StatusBadRequest,
		Message:        "Phone number is not whitelisted in WhatsApp API Sandbox.",
		NotWhitelisted: true,
	}}
	router := newCustomerRouter(t, sender)

	w := postCustomer(t, router, customerBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not whitelisted")

	// The customer record survives the failed send, matching the
	// registration-then-notify ordering
	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCollectSalesFeedbackProviderFailure(t *testing.T) {
	newTestDB(t)
	sender := &stubSender{err: &apperrors.ProviderError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Failed to send message: upstream error",
	}}
	router := newCustomerRouter(t, sender)

	w := postCustomer(t, router, customerBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

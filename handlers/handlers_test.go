package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	applicationRepo "doctorsmile/database/repository/application"
	bookingRepo "doctorsmile/database/repository/booking"
	"doctorsmile/handlers"
	"doctorsmile/models"
	"doctorsmile/routes"
	"doctorsmile/services/booking"
	"doctorsmile/services/enhance"
	"doctorsmile/services/funnel"
	"doctorsmile/services/intake"
	"doctorsmile/services/payment"
	"doctorsmile/services/slots"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type recordingDispatcher struct{}

func (recordingDispatcher) NotifyApplication(ctx context.Context, app models.Application) models.NotificationResult {
	return models.NotificationResult{ClientSent: true, OwnerSent: true}
}

func (recordingDispatcher) SendBookingConfirmation(ctx context.Context, email, name string, b models.Booking, displayTime string) bool {
	return true
}

// newTestRouter wires the full API surface over in-memory stores, the local
// enhancer, and the stub payment verifier.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	apps := applicationRepo.NewMemoryApplicationRepo()
	bookings := bookingRepo.NewMemoryBookingRepo()
	dispatcher := recordingDispatcher{}

	intakeSvc := intake.NewDefaultIntakeService(apps, dispatcher, logger)
	bookingSvc := &booking.DefaultBookingService{
		Repo:         bookings,
		Applications: apps,
		Dispatcher:   dispatcher,
		MeetingLink:  "https://zoom.us/j/doctorsmile-consultation",
		PhoneBackup:  "+1-647-555-0123",
		Logger:       logger,
		Now:          func() time.Time { return fixedNow },
	}
	verifier := &payment.StubVerifier{Logger: logger}
	catalog := &slots.Catalog{Now: func() time.Time { return fixedNow }}
	enhancer := enhance.NewService(nil, logger)

	machine := &funnel.Machine{
		Intake:   intakeSvc,
		Payments: verifier,
		Bookings: bookingSvc,
		Store:    funnel.NewMemorySessionStore(),
		Logger:   logger,
		Now:      func() time.Time { return fixedNow },
	}

	enhanceHandler := handlers.NewEnhanceHandler(enhancer, nil, logger)
	applicationHandler := handlers.NewApplicationHandler(intakeSvc, logger)
	slotsHandler := handlers.NewSlotsHandler(catalog)
	bookingHandler := handlers.NewBookingHandler(bookingSvc, logger)
	paymentHandler := handlers.NewPaymentHandler(verifier, logger)
	funnelHandler := handlers.NewFunnelHandler(machine, logger)

	hb := &handlers.HandlerBundle{
		ProcessSmilePhoto: enhanceHandler.ProcessSmilePhoto,
		SubmitApplication: applicationHandler.SubmitApplication,
		AvailableSlots:    slotsHandler.AvailableSlots,
		BookConsultation:  bookingHandler.BookConsultation,
		ConfirmPayment:    paymentHandler.ConfirmPayment,
		SendConfirmation:  bookingHandler.SendConfirmation,
		StartSession:      funnelHandler.StartSession,
		GetSession:        funnelHandler.GetSession,
		AdvanceSession:    funnelHandler.AdvanceSession,
	}

	r := gin.New()
	routes.RegisterRoutes(r, hb)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w, decodeBody(t, w)
}

func getJSON(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, decodeBody(t, w)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func janeDoeForm() map[string]any {
	return map[string]any{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"mobile":   "555-0100",
		"city":     "london",
		"goals":    "whiter teeth",
		"timeline": "asap",
		"budget":   "30-35k",
	}
}

func TestFullFunnelFlow(t *testing.T) {
	r := newTestRouter()

	// Submit the application.
	w, body := postJSON(t, r, "/api/funnel/submit-application", janeDoeForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["emailSent"])

	applicationID, _ := body["applicationId"].(string)
	require.True(t, strings.HasPrefix(applicationID, "pi_"))
	assert.Equal(t, applicationID, body["paymentIntentId"])
	assert.NotEmpty(t, body["clientSecret"])

	// Confirm the deposit.
	w, body = postJSON(t, r, "/api/funnel/confirm-payment", map[string]any{"paymentIntentId": applicationID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "payment_confirmed", body["status"])
	assert.Equal(t, true, body["redirectToCalendar"])
	assert.Equal(t, "/calendar-booking?applicationId="+applicationID, body["calendarUrl"])

	// Fetch the slot catalog and pick the first slot.
	w, body = getJSON(t, r, "/api/funnel/available-slots")
	require.Equal(t, http.StatusOK, w.Code)
	slotList, ok := body["slots"].([]any)
	require.True(t, ok)
	require.Len(t, slotList, 50)

	first, ok := slotList[0].(map[string]any)
	require.True(t, ok)
	selectedSlot, _ := first["datetime"].(string)
	require.NotEmpty(t, selectedSlot)
	assert.Equal(t, "Virtual Consultation", first["location"])
	assert.NotEmpty(t, first["displayTime"])

	// Book it.
	w, body = postJSON(t, r, "/api/funnel/book-consultation", map[string]any{
		"applicationId": applicationID,
		"selectedSlot":  selectedSlot,
		"timezone":      "UTC",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	bookingID, _ := body["bookingId"].(string)
	require.True(t, strings.HasPrefix(bookingID, "booking_"))

	confirmation, ok := body["confirmation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "20 minutes", confirmation["duration"])
	assert.Equal(t, "Virtual Consultation", confirmation["type"])
	assert.Equal(t, "https://zoom.us/j/doctorsmile-consultation", confirmation["meetingLink"])
	assert.Equal(t, "+1-647-555-0123", confirmation["phoneBackup"])
	assert.Len(t, body["nextSteps"], 4)

	// Dispatch the confirmation.
	w, body = postJSON(t, r, "/api/funnel/send-confirmation", map[string]any{"bookingId": bookingID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Confirmation sent via email and SMS", body["message"])

	receipt, ok := body["confirmation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, receipt["emailSent"])
	assert.Equal(t, true, receipt["smsSent"])
	assert.Equal(t, bookingID, receipt["confirmationNumber"])
}

func TestSubmitApplication_MissingField(t *testing.T) {
	r := newTestRouter()

	form := janeDoeForm()
	delete(form, "budget")

	w, body := postJSON(t, r, "/api/funnel/submit-application", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: budget", body["error"])
}

func TestConfirmPayment_MissingIntent(t *testing.T) {
	r := newTestRouter()

	w, body := postJSON(t, r, "/api/funnel/confirm-payment", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing payment intent ID", body["error"])
}

func TestSendConfirmation_UnknownBooking(t *testing.T) {
	r := newTestRouter()

	w, body := postJSON(t, r, "/api/funnel/send-confirmation", map[string]any{"bookingId": "booking_missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking not found", body["error"])
}

func TestProcessSmilePhoto(t *testing.T) {
	r := newTestRouter()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 210, G: 210, B: 210, A: 255})
		}
	}
	var photo bytes.Buffer
	require.NoError(t, png.Encode(&photo, img))

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="photo"; filename="smile.png"`)
	header.Set("Content-Type", "image/png")
	fw, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = fw.Write(photo.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("options", `{"level":8}`))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ai/process-smile-photo", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Photo processed successfully", body["message"])

	before, _ := body["beforeImage"].(string)
	after, _ := body["afterImage"].(string)
	assert.True(t, strings.HasPrefix(before, "data:image/"))
	assert.True(t, strings.HasPrefix(after, "data:image/"))
	assert.NotEqual(t, before, after)
}

func TestProcessSmilePhoto_NoPhoto(t *testing.T) {
	r := newTestRouter()

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ai/process-smile-photo", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "No photo provided", body["error"])
}

func TestFunnelSessionEndpoints(t *testing.T) {
	r := newTestRouter()

	w, body := postJSON(t, r, "/api/funnel/session", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	session, ok := body["session"].(map[string]any)
	require.True(t, ok)
	sessionID, _ := session["sessionId"].(string)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "landing", session["step"])

	// Out-of-order event conflicts and leaves the step alone.
	w, body = postJSON(t, r, "/api/funnel/session/"+sessionID+"/advance", map[string]any{"type": "book"})
	assert.Equal(t, http.StatusConflict, w.Code)
	session, _ = body["session"].(map[string]any)
	assert.Equal(t, "landing", session["step"])

	w, body = postJSON(t, r, "/api/funnel/session/"+sessionID+"/advance", map[string]any{"type": "open_application"})
	require.Equal(t, http.StatusOK, w.Code)
	session, _ = body["session"].(map[string]any)
	assert.Equal(t, "application_open", session["step"])

	w, body = postJSON(t, r, "/api/funnel/session/"+sessionID+"/advance", map[string]any{
		"type":   "submit",
		"fields": janeDoeForm(),
	})
	require.Equal(t, http.StatusOK, w.Code)
	session, _ = body["session"].(map[string]any)
	assert.Equal(t, "submitted", session["step"])
	assert.NotEmpty(t, session["applicationId"])

	w, body = getJSON(t, r, "/api/funnel/session/"+sessionID)
	require.Equal(t, http.StatusOK, w.Code)
	session, _ = body["session"].(map[string]any)
	assert.Equal(t, "submitted", session["step"])

	w, _ = getJSON(t, r, "/api/funnel/session/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter()

	w, body := getJSON(t, r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

package notifier_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/Wesley-SdS/modern-ecommerce/configs"
	"github.com/Wesley-SdS/modern-ecommerce/internal/notifier"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

var notice = notifier.OrderNotice{
	OrderID:      "order-1",
	CustomerName: "Ana",
	Email:        "ana@example.com",
	Phone:        "+5511999999999",
	TotalCents:   12345,
	Currency:     "BRL",
}

func TestEmailNotifier_SendsFormattedTotal(t *testing.T) {
	client := &fakeSES{}
	n := notifier.NewEmailNotifier(client, "shop@example.com")

	require.NoError(t, n.NotifyOrderPaid(context.Background(), notice))

	require.NotNil(t, client.input)
	assert.Equal(t, "shop@example.com", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ana@example.com"}, client.input.Destination.ToAddresses)
	assert.Contains(t, aws.ToString(client.input.Message.Subject.Data), "order-1")
	assert.Contains(t, aws.ToString(client.input.Message.Body.Text.Data), "R$ 123,45")
	assert.Contains(t, aws.ToString(client.input.Message.Body.Html.Data), "Dear Ana")
}

func TestEmailNotifier_Errors(t *testing.T) {
	n := notifier.NewEmailNotifier(&fakeSES{err: errors.New("throttled")}, "shop@example.com")
	err := n.NotifyOrderPaid(context.Background(), notice)
	assert.ErrorContains(t, err, "throttled")

	noEmail := notice
	noEmail.Email = ""
	assert.Error(t, n.NotifyOrderPaid(context.Background(), noEmail))
}

func TestSMSNotifier_PostsForm(t *testing.T) {
	var form url.Values
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("apikey")
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"SMSMessageData":{"Message":"Sent to 1/1","Recipients":[{"statusCode":101,"status":"Success"}]}}`))
	}))
	defer srv.Close()

	n := notifier.NewSMSNotifier(config.AfricaTalkingConfig{
		Username: "sandbox",
		APIKey:   "key-123",
		SMSURL:   srv.URL,
		SenderID: "SHOP",
	}, srv.Client())

	require.NoError(t, n.NotifyOrderPaid(context.Background(), notice))
	assert.Equal(t, "key-123", apiKey)
	assert.Equal(t, "sandbox", form.Get("username"))
	assert.Equal(t, "+5511999999999", form.Get("to"))
	assert.Equal(t, "SHOP", form.Get("from"))
	assert.Contains(t, form.Get("message"), "R$ 123,45")
}

func TestSMSNotifier_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"SMSMessageData":{"Message":"bad key"}}`))
	}))
	defer srv.Close()

	n := notifier.NewSMSNotifier(config.AfricaTalkingConfig{SMSURL: srv.URL}, srv.Client())
	assert.ErrorContains(t, n.NotifyOrderPaid(context.Background(), notice), "401")
}

func TestSMSNotifier_SkipsWithoutPhone(t *testing.T) {
	n := notifier.NewSMSNotifier(config.AfricaTalkingConfig{SMSURL: "http://127.0.0.1:1"}, nil)
	noPhone := notice
	noPhone.Phone = ""
	assert.NoError(t, n.NotifyOrderPaid(context.Background(), noPhone))
}

type recorder struct {
	calls int
	err   error
}

func (r *recorder) NotifyOrderPaid(context.Context, notifier.OrderNotice) error {
	r.calls++
	return r.err
}

func TestMulti_CallsAllAndJoinsErrors(t *testing.T) {
	a := &recorder{err: errors.New("email down")}
	b := &recorder{}
	err := notifier.Multi{a, b, notifier.Nop{}}.NotifyOrderPaid(context.Background(), notice)

	assert.ErrorContains(t, err, "email down")
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

package clients

import (
	"github.com/razorpay/razorpay-go"
)

// RazorpayClientWrapper provides an interface for the Razorpay operations
// this service needs. The interface exists so controllers can be tested
// against a mock gateway.
type RazorpayClientWrapper interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
}

// RazorpayClient implements RazorpayClientWrapper using the Razorpay SDK.
type RazorpayClient struct {
	Client *razorpay.Client
}

// NewRazorpayClient initializes the underlying SDK client with the given
// key ID and secret.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		Client: razorpay.NewClient(keyID, keySecret),
	}
}

// CreateOrder creates a new order in Razorpay. The second argument to
// Order.Create is for optional headers, not needed here.
func (r *RazorpayClient) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return r.Client.Order.Create(data, nil)
}

package request

// DeliveryCallbackRequest is what providers post back when a message
// reaches the recipient.
type DeliveryCallbackRequest struct {
	ProviderMsgID string `json:"provider_msg_id" binding:"required"`
	Status        string `json:"status,omitempty"`
}

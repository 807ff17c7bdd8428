package domain

// CustomerDetails are the contact fields a shopper types into the order form.
type CustomerDetails struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	Message string `json:"message"`
}

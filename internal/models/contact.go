package models

// ContactRequest is the public contact form. Website is a honeypot field that
// real visitors never see or fill in.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"max=150"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
	Website string `json:"website" validate:"max=200"`
}

// ContactResponse acknowledges a contact submission.
type ContactResponse struct {
	Message string `json:"message"`
}

package models

// ContactForm is the payload of the contact page form.
type ContactForm struct {
	Name    string `form:"name" json:"name" binding:"required,min=2"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Phone   string `form:"phone" json:"phone"`
	Subject string `form:"subject" json:"subject" binding:"required,min=3"`
	Message string `form:"message" json:"message" binding:"required,min=10"`
}

// ReservationForm is the payload of the table booking form.
type ReservationForm struct {
	Name            string `form:"name" json:"name" binding:"required,min=2"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	Phone           string `form:"phone" json:"phone" binding:"required,min=10"`
	Date            string `form:"date" json:"date" binding:"required,datetime=2006-01-02"`
	Time            string `form:"time" json:"time" binding:"required,timeslot"`
	Guests          string `form:"guests" json:"guests" binding:"required,partysize"`
	SpecialRequests string `form:"specialRequests" json:"specialRequests"`
}

// NewsletterForm is the footer subscription form.
type NewsletterForm struct {
	Email string `form:"email" json:"email" binding:"required,email"`
}

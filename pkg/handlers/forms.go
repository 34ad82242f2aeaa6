package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"coffee-house/pkg/models"
	"coffee-house/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func (h *Handler) submit(c *gin.Context, kind services.FormKind, payload any) (services.Receipt, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.SubmitTimeout)
	defer cancel()
	return h.Submitter.Submit(ctx, services.Submission{
		Kind:     kind,
		Instance: formInstance(c),
		Payload:  payload,
	})
}

func submitStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// bindForm binds and validates a form post. ok is false when the request
// could not be decoded at all.
func bindForm[T any](c *gin.Context, b binding.Binding) (form T, errs services.FieldErrors, ok bool) {
	err := services.TranslateValidation(form, c.ShouldBindWith(&form, b))
	if err == nil {
		return form, nil, true
	}
	if errors.As(err, &errs) {
		return form, errs, true
	}
	return form, nil, false
}

func (h *Handler) SubmitContact(c *gin.Context) {
	form, errs, ok := bindForm[models.ContactForm](c, binding.Form)
	if !ok {
		c.String(http.StatusBadRequest, "Invalid form")
		return
	}
	if errs != nil {
		h.render(c, http.StatusUnprocessableEntity, "contact", "contact.html", gin.H{"Form": form, "Errors": errs})
		return
	}

	notices := services.NoticesFor(services.ContactKind)
	if _, err := h.submit(c, services.ContactKind, form); err != nil {
		h.render(c, submitStatus(err), "contact", "contact.html", gin.H{
			"Form":    form,
			"Errors":  services.FieldErrors{},
			"Failure": notices.Failure,
		})
		return
	}
	flash(c, "success", notices.Success)
	c.Redirect(http.StatusSeeOther, "/contact")
}

func (h *Handler) SubmitReservation(c *gin.Context) {
	form, errs, ok := bindForm[models.ReservationForm](c, binding.Form)
	if !ok {
		c.String(http.StatusBadRequest, "Invalid form")
		return
	}
	if errs != nil {
		h.render(c, http.StatusUnprocessableEntity, "reservations", "reservations.html", reservationData(form, errs))
		return
	}

	notices := services.NoticesFor(services.ReservationKind)
	if _, err := h.submit(c, services.ReservationKind, form); err != nil {
		data := reservationData(form, services.FieldErrors{})
		data["Failure"] = notices.Failure
		h.render(c, submitStatus(err), "reservations", "reservations.html", data)
		return
	}
	flash(c, "success", notices.Success)
	c.Redirect(http.StatusSeeOther, "/reservations")
}

// SubmitNewsletter handles the footer form and returns to the page it was
// posted from.
func (h *Handler) SubmitNewsletter(c *gin.Context) {
	back := returnPath(c)
	form, errs, ok := bindForm[models.NewsletterForm](c, binding.Form)
	if !ok {
		c.String(http.StatusBadRequest, "Invalid form")
		return
	}
	if errs != nil {
		flash(c, "error", errs["email"])
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	notices := services.NoticesFor(services.NewsletterKind)
	if _, err := h.submit(c, services.NewsletterKind, form); err != nil {
		flash(c, "error", notices.Failure)
	} else {
		flash(c, "success", notices.Success)
	}
	c.Redirect(http.StatusSeeOther, back)
}

// returnPath is the local path of the referring page, or "/".
func returnPath(c *gin.Context) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || !localPath(ref.Path) || (ref.Host != "" && ref.Host != c.Request.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

// localPath accepts "/" and paths under it that a browser cannot read as
// protocol-relative.
func localPath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	return len(p) == 1 || (p[1] != '/' && p[1] != '\\')
}

func postForm[T any](h *Handler, c *gin.Context, kind services.FormKind) {
	form, errs, ok := bindForm[T](c, binding.JSON)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	notices := services.NoticesFor(kind)
	receipt, err := h.submit(c, kind, form)
	if err != nil {
		c.JSON(submitStatus(err), gin.H{"error": notices.Failure})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": notices.Success, "receipt": receipt})
}

func (h *Handler) PostContact(c *gin.Context) {
	postForm[models.ContactForm](h, c, services.ContactKind)
}

func (h *Handler) PostReservation(c *gin.Context) {
	postForm[models.ReservationForm](h, c, services.ReservationKind)
}

func (h *Handler) PostNewsletter(c *gin.Context) {
	postForm[models.NewsletterForm](h, c, services.NewsletterKind)
}

package outbound

import "github.com/propmarket/server/internal/model"

// PaymentReportPort renders payments into a downloadable document.
type PaymentReportPort interface {
	// ContentType returns the MIME type of rendered reports.
	ContentType() string

	// Extension returns the file extension of rendered reports, without the dot.
	Extension() string

	// Render renders the payments.
	Render(payments []*model.Payment) ([]byte, error)
}

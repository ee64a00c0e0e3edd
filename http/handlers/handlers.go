package handlers

import (
	services "academy-dashboard/http/services"
	infra "academy-dashboard/services"
)

var paymentService *services.PaymentService

// Init wires the handler package with its service dependencies. The cache
// may be nil, which disables course-details caching.
func Init(cache *infra.AcademyCache) {
	paymentService = services.NewPaymentService(cache)
}

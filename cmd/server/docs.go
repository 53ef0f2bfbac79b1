// Package main PropMarket Payments API
//
//	@title						PropMarket Payments API
//	@version					1.0
//	@description				Payment core of the PropMarket listing marketplace: listing fees, inspection bookings, boosts and in-app notifications.
//
//	@contact.name				PropMarket Engineering
//	@contact.email				engineering@propmarket.app
//
//	@license.name				Proprietary
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					payments
//	@tag.description			Payment creation, checkout, verification and history
//
//	@tag.name					admin
//	@tag.description			Payment listing, revenue analytics and exports
//
//	@tag.name					webhooks
//	@tag.description			Signed gateway callbacks
//
//	@tag.name					notifications
//	@tag.description			In-app notifications
package main

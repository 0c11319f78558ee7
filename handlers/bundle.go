package handlers

import (
	userRepo "clinicportal/database/repository/user"
)

// HandlerBundle aggregates the handlers and the repository the route
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Appointments *AppointmentHandler
	Bookings     *BookingHandler
	Users        *UserHandler
	Doctors      *DoctorHandler
	Payments     *PaymentHandler
}

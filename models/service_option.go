package models

// ServiceOption is a bookable appointment category with its fixed daily
// schedule. The slot list is a template and is never mutated by bookings;
// availability is derived from it at read time.
type ServiceOption struct {
	ID    string   `bson:"id" json:"id"`
	Name  string   `bson:"name" json:"name"`
	Price float64  `bson:"price" json:"price"`
	Slots []string `bson:"slots" json:"slots"`
}

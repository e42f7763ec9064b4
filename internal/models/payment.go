package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment is append-only; one per paid order.
type Payment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID        primitive.ObjectID `bson:"orderId" json:"orderId"`
	CustomerEmail  string             `bson:"customerEmail" json:"customerEmail"`
	TotalToolPrice float64            `bson:"totalToolPrice" json:"totalToolPrice"`
	TransactionID  string             `bson:"transactionId" json:"transactionId"`
	Date           string             `bson:"date" json:"date"`
}

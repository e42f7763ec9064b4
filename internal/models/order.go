package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	CustomerName  string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerPhone string             `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	ToolID        string             `bson:"toolId,omitempty" json:"toolId,omitempty"`
	ToolName      string             `bson:"toolName" json:"toolName"`
	ToolPrice     float64            `bson:"toolPrice" json:"toolPrice"`
	Quantity      int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID *string            `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

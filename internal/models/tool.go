package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Tool struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	MinOrder    int                `bson:"minOrder" json:"minOrder"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Rating      float64            `bson:"rating,omitempty" json:"rating,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}

// ToolQuery selects a page of the catalog. Limit 0 means no paging.
type ToolQuery struct {
	Page   int
	Limit  int
	Search string
}

package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/client"
)

type clientResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Address   address.Address `json:"address"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toResponseList(cs []*client.Client) []clientResponse {
	resp := make([]clientResponse, 0, len(cs))
	for _, c := range cs {
		resp = append(resp, toResponse(c))
	}

	return resp
}

package domain

import "time"

type Customer struct {
	ID        ID
	CreatedAt time.Time
}

func NewCustomer() *Customer {
	return &Customer{CreatedAt: time.Now()}
}

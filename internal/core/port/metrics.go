package port

import "time"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type OrderMetrics interface {
	ObserveOrderCreation(outcome string, duration time.Duration)
	AddItemsSold(quantity int)
}

package entity

import "time"

// OrderHistoryItem is one entry of the historical-orders listing. It only
// drives the per-order detail fetch and is never persisted itself.
type OrderHistoryItem struct {
	ID     string    `json:"id"`
	Total  float64   `json:"total"`
	Placed time.Time `json:"placed"`
	Store  string    `json:"store"`
}

// OrderHistory is the response of the historical-orders listing endpoint.
type OrderHistory struct {
	OfflineOrdersCount int                `json:"offlineOrdersCount"`
	OnlineOrdersCount  int                `json:"onlineOrdersCount"`
	OrderHistory       []OrderHistoryItem `json:"orderHistory"`
}

/*
SQLite tables

CREATE TABLE IF NOT EXISTS orders (
	rowId INTEGER PRIMARY KEY ASC,
	orderId TEXT NOT NULL UNIQUE,
	orderBody TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	rowId INTEGER PRIMARY KEY ASC,
	productCode TEXT NOT NULL UNIQUE,
	productBody TEXT NOT NULL
);

orderBody and productBody hold the raw JSON detail payloads verbatim.
*/

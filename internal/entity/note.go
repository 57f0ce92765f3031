package entity

import "errors"

var ErrContentRequired = errors.New("content field is required")

type Note struct {
	Content string
}

type RelayStatus struct {
	Status      string
	Message     string
	FlomoAPIURL string
}

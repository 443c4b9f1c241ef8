package core

import (
	"github.com/google/uuid"

	"pkt.systems/simry/schema"
)

func newBufferID() schema.BufferID {
	return schema.BufferID(uuid.NewString())
}

func newWindowID() schema.WindowID {
	return schema.WindowID(uuid.NewString())
}

package handlers

import (
	"github.com/gorilla/schema"
)

// ClickDTO is the decoded cell action. Anything that does not convert to
// two ints is rejected at this boundary; the engine only ever sees typed
// coordinates.
type ClickDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParseClickDTO(src map[string][]string) (ClickDTO, error) {
	var dto ClickDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

package importer

import (
	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/encoding"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
)

// Kind is the catalog a CSV file is imported into.
type Kind string

const (
	KindItems   Kind = "items"
	KindClients Kind = "clients"
)

// Batch is a parsed, not yet stored, CSV file.
type Batch struct {
	Kind    Kind
	Charset encoding.Charset
	Items   []item.CreateParams
	Clients []client.CreateParams
}

func (b *Batch) Len() int {
	return len(b.Items) + len(b.Clients)
}

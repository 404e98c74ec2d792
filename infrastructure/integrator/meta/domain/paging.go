package metadomain

// Cursors carrega os tokens opacos de continuação da paginação
type Cursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// Paging é o bloco de metadados de paginação das coleções da API
type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// Page é uma página de uma coleção paginada por cursor
type Page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

// After retorna o cursor de continuação. A API só preenche cursors.after
// quando existe uma próxima página.
func (p Page[T]) After() string {
	return p.Paging.Cursors.After
}

package entity

import "time"

// IssuedNFeRef referencia a una NF-e devuelta por el listado del servicio emisor.
type IssuedNFeRef struct {
	AccessKey string
	Number    string
	Series    string
	CFOP      string // CFOP agregado informado por el emisor, puede venir vacío
	IssuedAt  time.Time
}

// SyncReport resumen de una corrida de sincronización. Se crea una vez por corrida.
// Failed indica la falla fatal del listado; en ese caso no se procesó ninguna nota.
type SyncReport struct {
	WindowStart time.Time `json:"janela_inicio"`
	WindowEnd   time.Time `json:"janela_fim"`
	Found       int       `json:"nfes_encontradas"`
	Processed   int       `json:"nfes_processadas"`
	Outbound    int       `json:"nfes_saida"`
	Inbound     int       `json:"nfes_entrada"`
	Duplicates  int       `json:"nfes_duplicadas"`
	Errors      []string  `json:"erros"`
	Failed      bool      `json:"falhou"`
	FatalError  string    `json:"erro_fatal,omitempty"`
	InProgress  bool      `json:"sync_em_execucao,omitempty"` // otra corrida tenía el lock
	StartedAt   time.Time `json:"iniciado_em"`
	FinishedAt  time.Time `json:"finalizado_em"`
}

// AddError registra un error por nota sin abortar la corrida.
func (r *SyncReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Package maino cliente HTTP de la API de notas fiscales de Maino (emisor de NF-e).
package maino

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/pkg/logger"
)

const (
	listPath   = "/api/v2/notas_fiscais/emitidas"
	xmlPathFmt = "/api/v2/notas_fiscais/%s/xml"
	dateLayout = "2006-01-02"

	// maxPages corta paginaciones que no terminan.
	maxPages = 500
	// maxBody límite de lectura de una respuesta (los XML de NF-e rara vez pasan de 1 MB).
	maxBody = 8 << 20
)

// Config parámetros del cliente.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration // por request
	MaxRetries int
	// BaseDelay primer intervalo del backoff exponencial.
	BaseDelay time.Duration
}

// Client implementa nfesync.InvoiceIssuer contra la API REST de Maino.
// Cada llamada pasa por un circuit breaker y se reintenta con backoff en errores transitorios.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	baseDelay  time.Duration
	log        *logger.Logger
}

// NewClient construye el cliente.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	l := log.Component("maino")
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
		log:        l,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "maino",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Un 404 o 4xx de validación no indica que el servicio esté caído.
			return err == nil || !retryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn().Str("breaker", name).Str("de", from.String()).Str("a", to.String()).Msg("circuit breaker cambió de estado")
		},
	})
	return c
}

// ListIssued recorre todas las páginas del listado de notas emitidas en [start, end].
func (c *Client) ListIssued(ctx context.Context, start, end time.Time) ([]entity.IssuedNFeRef, error) {
	refs := make([]entity.IssuedNFeRef, 0)
	for page := 1; page <= maxPages; page++ {
		q := url.Values{}
		q.Set("data_inicio", start.Format(dateLayout))
		q.Set("data_fim", end.Format(dateLayout))
		q.Set("page", strconv.Itoa(page))

		body, err := c.get(ctx, "list_issued", listPath+"?"+q.Encode())
		if err != nil {
			return nil, err
		}
		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, &domain.ServiceError{Op: "list_issued", Cause: fmt.Errorf("decodificar página %d: %w", page, err)}
		}
		for _, n := range resp.NotasFiscais {
			refs = append(refs, entity.IssuedNFeRef{
				AccessKey: strings.TrimSpace(n.ChaveAcesso),
				Number:    n.Numero,
				Series:    n.Serie,
				CFOP:      n.CFOP,
				IssuedAt:  n.issuedAt(),
			})
		}
		if len(resp.NotasFiscais) == 0 || resp.Pagination.TotalPages <= page {
			return refs, nil
		}
	}
	return nil, &domain.ServiceError{Op: "list_issued", Cause: fmt.Errorf("paginación excede %d páginas", maxPages)}
}

// FetchXML descarga el XML autorizado. Acepta respuesta XML directa o JSON {"xml": "..."}.
func (c *Client) FetchXML(ctx context.Context, accessKey string) ([]byte, error) {
	if accessKey == "" {
		return nil, &domain.ServiceError{Op: "fetch_xml", Cause: errors.New("chave de acesso vazia")}
	}
	body, err := c.get(ctx, "fetch_xml", fmt.Sprintf(xmlPathFmt, url.PathEscape(accessKey)))
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		var wrapped xmlResponse
		if err := json.Unmarshal(body, &wrapped); err != nil || wrapped.XML == "" {
			return nil, &domain.ServiceError{Op: "fetch_xml", Cause: fmt.Errorf("resposta sem XML para %s", accessKey)}
		}
		return []byte(wrapped.XML), nil
	}
	return body, nil
}

// get ejecuta un GET con breaker + reintentos y devuelve el cuerpo de una respuesta 2xx.
func (c *Client) get(ctx context.Context, op, pathAndQuery string) ([]byte, error) {
	var body []byte
	attempt := func() error {
		result, err := c.breaker.Execute(func() (any, error) {
			return c.do(ctx, op, pathAndQuery)
		})
		if err == nil {
			body = result.([]byte)
			return nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(&domain.ServiceError{Op: op, Cause: fmt.Errorf("serviço indisponível (circuit breaker): %w", err)})
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.log.Debug().Err(err).Str("op", op).Dur("espera", wait).Msg("reintentando")
	}

	if err := backoff.RetryNotify(attempt, newBackOff(ctx, c.baseDelay, c.maxRetries), notify); err != nil {
		var sErr *domain.ServiceError
		if !errors.As(err, &sErr) {
			// contexto cancelado durante la espera
			return nil, &domain.ServiceError{Op: op, Cause: err}
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, op, pathAndQuery string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, &domain.ServiceError{Op: op, Cause: fmt.Errorf("crear request: %w", err)}
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json, application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.ServiceError{Op: op, Cause: fmt.Errorf("timeout o cancelación: %w", ctx.Err())}
		}
		return nil, &domain.ServiceError{Op: op, Cause: fmt.Errorf("llamada HTTP fallida: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &domain.ServiceError{Op: op, StatusCode: resp.StatusCode, Cause: fmt.Errorf("leer respuesta: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.text() != "" {
			msg = e.text()
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, &domain.ServiceError{Op: op, StatusCode: resp.StatusCode, Cause: errors.New(msg)}
	}
	return body, nil
}

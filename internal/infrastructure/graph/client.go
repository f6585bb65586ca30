package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/service-stock-sync/internal/domain/entity"
	"github.com/jhoicas/service-stock-sync/pkg/logger"
)

// ── Constantes de endpoint ─────────────────────────────────────────────────────

const (
	defaultBaseURL  = "https://graph.microsoft.com/v1.0"
	defaultLoginURL = "https://login.microsoftonline.com"

	// rowPageSize tamaño de página del endpoint de filas ($top).
	rowPageSize = 500
	// maxAttempts reintentos ante HTTP transitorio (429/5xx).
	maxAttempts = 6
)

// Config parámetros de acceso al workbook en SharePoint vía Microsoft Graph.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	SiteHostname string
	SitePath     string
	WorkbookPath string
	TableName    string

	// BaseURL y LoginURL permiten apuntar a un servidor de pruebas.
	// Vacíos usan los endpoints reales.
	BaseURL  string
	LoginURL string
}

// Client cliente de Microsoft Graph para leer la tabla del workbook.
// Implementa el puerto sync.TableFetcher. Construido sobre net/http con un
// timeout generoso: el endpoint de workbook puede tardar varios segundos.
type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

// NewClient construye el cliente.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = defaultLoginURL
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
		log:  log,
	}
}

// FetchRows descarga la tabla completa y la devuelve como secuencia ordenada
// de filas crudas: token, resolución de sitio y archivo, columnas (ordenadas
// por índice) y filas paginadas siguiendo @odata.nextLink.
func (c *Client) FetchRows(ctx context.Context) ([]entity.RawRow, error) {
	token, err := c.acquireToken(ctx)
	if err != nil {
		return nil, err
	}

	sitePath := normalizeSitePath(c.cfg.SitePath)
	var site struct {
		ID string `json:"id"`
	}
	siteURL := fmt.Sprintf("%s/sites/%s:%s", c.cfg.BaseURL, c.cfg.SiteHostname, sitePath)
	if err := c.getJSON(ctx, token, siteURL, &site); err != nil {
		return nil, fmt.Errorf("resolver sitio %s:%s: %w", c.cfg.SiteHostname, sitePath, err)
	}
	if site.ID == "" {
		return nil, fmt.Errorf("resolver sitio %s:%s: respuesta sin id", c.cfg.SiteHostname, sitePath)
	}

	drivePath := normalizeDrivePath(c.cfg.WorkbookPath)
	var item struct {
		ID string `json:"id"`
	}
	itemURL := fmt.Sprintf("%s/sites/%s/drive/root:/%s", c.cfg.BaseURL, site.ID, escapePath(drivePath))
	if err := c.getJSON(ctx, token, itemURL, &item); err != nil {
		return nil, fmt.Errorf("resolver workbook /%s: %w", drivePath, err)
	}
	if item.ID == "" {
		return nil, fmt.Errorf("resolver workbook /%s: respuesta sin id", drivePath)
	}

	names, err := c.tableColumns(ctx, token, site.ID, item.ID)
	if err != nil {
		return nil, err
	}
	c.log.Info().Strs("columns", names).Msg("columnas de la tabla resueltas")

	return c.tableRows(ctx, token, site.ID, item.ID, names)
}

// tableColumns devuelve los nombres de columna ordenados por su índice en la
// tabla, que es el orden en que llegan los valores de cada fila.
func (c *Client) tableColumns(ctx context.Context, token, siteID, itemID string) ([]string, error) {
	var cols struct {
		Value []struct {
			Name  string `json:"name"`
			Index int    `json:"index"`
		} `json:"value"`
	}
	u := fmt.Sprintf("%s/sites/%s/drive/items/%s/workbook/tables/%s/columns?$select=name,index",
		c.cfg.BaseURL, siteID, itemID, url.PathEscape(c.cfg.TableName))
	if err := c.getJSON(ctx, token, u, &cols); err != nil {
		return nil, fmt.Errorf("cargar columnas de la tabla %q: %w", c.cfg.TableName, err)
	}
	if len(cols.Value) == 0 {
		return nil, fmt.Errorf("la tabla %q no devolvió columnas; verificar SP_TABLE_NAME", c.cfg.TableName)
	}

	sorted := cols.Value
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Index < sorted[j-1].Index; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	names := make([]string, len(sorted))
	for i, col := range sorted {
		names[i] = col.Name
	}
	return names, nil
}

// tableRows pagina el endpoint de filas y arma cada RawRow cruzando los
// nombres de columna con el arreglo de valores. Filas cortas se completan
// con celdas vacías.
func (c *Client) tableRows(ctx context.Context, token, siteID, itemID string, names []string) ([]entity.RawRow, error) {
	var out []entity.RawRow
	next := fmt.Sprintf("%s/sites/%s/drive/items/%s/workbook/tables/%s/rows?$top=%d",
		c.cfg.BaseURL, siteID, itemID, url.PathEscape(c.cfg.TableName), rowPageSize)

	for next != "" {
		var page struct {
			Value []struct {
				Values [][]any `json:"values"`
			} `json:"value"`
			NextLink string `json:"@odata.nextLink"`
		}
		if err := c.getJSON(ctx, token, next, &page); err != nil {
			return nil, fmt.Errorf("cargar filas de la tabla %q: %w", c.cfg.TableName, err)
		}

		for _, r := range page.Value {
			var values []any
			if len(r.Values) > 0 {
				values = r.Values[0]
			}
			row := make(entity.RawRow, len(names))
			for i, name := range names {
				if i < len(values) {
					row[name] = toCell(values[i])
				} else {
					row[name] = entity.EmptyCell()
				}
			}
			out = append(out, row)
		}
		next = page.NextLink
	}

	c.log.Info().Int("rows", len(out)).Msg("filas de la tabla descargadas")
	return out, nil
}

// ── Token ─────────────────────────────────────────────────────────────────────

// acquireToken obtiene un access token de Graph con el flujo client
// credentials. El token es un bearer opaco; no se inspecciona ni cachea
// porque una corrida completa dura menos que su vigencia.
func (c *Client) acquireToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {"https://graph.microsoft.com/.default"},
	}
	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.cfg.LoginURL, c.cfg.TenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("solicitar token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 400))
		return "", fmt.Errorf("solicitar token: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decodificar respuesta de token: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("respuesta de token sin access_token")
	}
	return payload.AccessToken, nil
}

// ── GET con reintentos ────────────────────────────────────────────────────────

// getJSON ejecuta un GET autenticado y decodifica el cuerpo JSON en out.
// HTTP 429 y 5xx se reintentan con backoff exponencial respetando
// Retry-After; cualquier otro estado es fatal para la corrida.
func (c *Client) getJSON(ctx context.Context, token, rawURL string, out any) error {
	backoff := 2 * time.Second

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("GET %s: %w", rawURL, err)
		}

		if resp.StatusCode == http.StatusOK {
			dec := json.NewDecoder(resp.Body)
			dec.UseNumber() // preservar precisión numérica para decimal
			err := dec.Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("decodificar respuesta de %s: %w", rawURL, err)
			}
			return nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 600))
		retryAfter := resp.Header.Get("Retry-After")
		resp.Body.Close()

		if transient(resp.StatusCode) && attempt < maxAttempts {
			wait := backoff
			if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
			c.log.Warn().
				Int("status", resp.StatusCode).
				Int("attempt", attempt).
				Dur("wait", wait).
				Msg("HTTP transitorio en GET a Graph; reintentando")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			backoff = backoff * 9 / 5
			if backoff > 30*time.Second {
				backoff = 30 * time.Second
			}
			continue
		}

		return fmt.Errorf("GET %s: HTTP %d: %s", rawURL, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return fmt.Errorf("GET %s: reintentos agotados", rawURL)
}

func transient(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

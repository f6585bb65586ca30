package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del sincronizador (lectura vía Viper desde
// env y opcionalmente archivo). Los nombres de variable replican los que el
// job programado define como secrets, por eso no usan prefijo común.
type Config struct {
	App     AppConfig
	Graph   GraphConfig
	Columns ColumnsConfig
	Output  OutputConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// GraphConfig credenciales y coordenadas del workbook en SharePoint
// (Microsoft Graph, flujo client credentials).
type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	SiteHostname string // ej. contoso.sharepoint.com
	SitePath     string // ej. /sites/common (se normaliza al prefijo /sites/)
	WorkbookPath string // ruta del .xlsx relativa a la raíz del drive
	TableName    string // nombre exacto de la tabla de Excel
}

// Validate verifica las variables obligatorias para hablar con Graph.
// Devuelve un único error con la lista completa de faltantes para que un
// secret mal mapeado en el CI se corrija en una sola pasada.
func (c GraphConfig) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"TENANT_ID", c.TenantID},
		{"CLIENT_ID", c.ClientID},
		{"CLIENT_SECRET", c.ClientSecret},
		{"SP_SITE_HOSTNAME", c.SiteHostname},
		{"SP_SITE_PATH", c.SitePath},
		{"SP_XLSX_PATH", c.WorkbookPath},
		{"SP_TABLE_NAME", c.TableName},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("faltan variables de entorno requeridas: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ColumnsConfig overrides opcionales del mapeo de columnas crudas a campos
// semánticos. Vacío usa los nombres por defecto del normalizador.
type ColumnsConfig struct {
	SKU   string
	Model string
	Qty   string
}

// OutputConfig rutas de los artefactos publicados en el árbol estático.
type OutputConfig struct {
	SnapshotPath   string // JSON de stock que consume el front-end
	PalettePath    string // YAML de paleta de colores
	StylesheetPath string // CSS generado desde la paleta
	PublicDir      string // raíz del sitio estático (para el servidor local)
}

// HTTPConfig configuración del servidor de previsualización local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "service-stock-sync"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Graph: GraphConfig{
			TenantID:     getString(v, "TENANT_ID", ""),
			ClientID:     getString(v, "CLIENT_ID", ""),
			ClientSecret: getString(v, "CLIENT_SECRET", ""),
			SiteHostname: getString(v, "SP_SITE_HOSTNAME", ""),
			SitePath:     getString(v, "SP_SITE_PATH", ""),
			WorkbookPath: getString(v, "SP_XLSX_PATH", ""),
			TableName:    getString(v, "SP_TABLE_NAME", ""),
		},
		Columns: ColumnsConfig{
			SKU:   getString(v, "SP_COL_SKU", ""),
			Model: getString(v, "SP_COL_MODEL", ""),
			Qty:   getString(v, "SP_COL_QTY", ""),
		},
		Output: OutputConfig{
			SnapshotPath:   getString(v, "OUTPUT_PATH", "public/data/service_stock.json"),
			PalettePath:    getString(v, "PALETTE_PATH", "palette.yaml"),
			StylesheetPath: getString(v, "CSS_OUTPUT_PATH", "public/styles.css"),
			PublicDir:      getString(v, "PUBLIC_DIR", "public"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

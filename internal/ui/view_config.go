package ui

import (
	"strconv"
	"strings"

	"github.com/thesavant42/marsphotos/internal/models"
)

// Locale identifiers accepted by ConfigForLocale
const (
	LocaleEnglish    = "en"
	LocalePortuguese = "pt-BR"
)

// Field is a photo attribute that can be shown as a results column
type Field string

const (
	FieldID             Field = "id"
	FieldSol            Field = "sol"
	FieldCamera         Field = "camera"
	FieldCameraFullName Field = "camera_full_name"
	FieldEarthDate      Field = "earth_date"
	FieldRover          Field = "rover"
	FieldImgSrc         Field = "img_src"
)

// Value returns the display text of f for p
func (f Field) Value(p models.PhotoRecord) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(p.ID, 10)
	case FieldSol:
		return strconv.Itoa(p.Sol)
	case FieldCamera:
		return p.Camera.Name
	case FieldCameraFullName:
		return p.Camera.FullName
	case FieldEarthDate:
		return p.EarthDate
	case FieldRover:
		return p.Rover.Name
	case FieldImgSrc:
		return p.ImgSrc
	}
	return ""
}

// FieldColumn sizes one results column
type FieldColumn struct {
	Field      Field
	FixedWidth int
	FlexRatio  int
	MinWidth   int
}

// Messages holds every user-visible string of the shell
type Messages struct {
	Title             string
	RoverLabel        string
	CameraLabel       string
	DateLabel         string
	RoverPlaceholder  string
	CameraPlaceholder string
	CameraDisabled    string
	DatePlaceholder   string
	RequiredOption    string
	InvalidRover      string
	DateRequired      string
	DateFormat        string
	Submit            string
	Loading           string
	CheckingNext      string
	NoResults         string
	ErrorPrefix       string
	Page              string
	Featured          string
	FeaturedLoading   string
	FeaturedEmpty     string
	Recent            string
	OpenTitle         string
	OpenDescription   string
	Opening           string
	Opened            string
	Untrusted         string
	RetryHint         string
	Yes               string
	No                string
	FormHelp          string
	ResultsHelp       string
	FieldTitles       map[Field]string
}

// ViewConfig parameterises the whole shell: locale strings, result columns
// and suggestion list height.
type ViewConfig struct {
	Locale           string
	Messages         Messages
	Columns          []FieldColumn
	SuggestionHeight int
	RecentLimit      int
	FeaturedLimit    int
}

// DefaultColumns are the result columns shown unless overridden
var DefaultColumns = []FieldColumn{
	{Field: FieldID, FixedWidth: 9},
	{Field: FieldSol, FixedWidth: 6},
	{Field: FieldCamera, FixedWidth: 14},
	{Field: FieldCameraFullName, FlexRatio: 35, MinWidth: 16},
	{Field: FieldEarthDate, FixedWidth: 11},
	{Field: FieldImgSrc, FlexRatio: 65, MinWidth: 20},
}

var englishMessages = Messages{
	Title:             "Mars Rover Photos",
	RoverLabel:        "Rover",
	CameraLabel:       "Camera",
	DateLabel:         "Earth date",
	RoverPlaceholder:  "Type a rover name",
	CameraPlaceholder: "Any camera",
	CameraDisabled:    "Choose a rover first",
	DatePlaceholder:   "YYYY-MM-DD",
	RequiredOption:    "Choose one of the available options",
	InvalidRover:      "Invalid rover",
	DateRequired:      "Earth date is required.",
	DateFormat:        "Use the YYYY-MM-DD format",
	Submit:            "Search",
	Loading:           "Loading photos...",
	CheckingNext:      "checking next page",
	NoResults:         "No photos found.",
	ErrorPrefix:       "Error",
	Page:              "Page",
	Featured:          "Featured: Curiosity, sol 1000",
	FeaturedLoading:   "Loading featured photos...",
	FeaturedEmpty:     "No featured photos.",
	Recent:            "Recent searches",
	OpenTitle:         "Open photo %d in your browser?",
	OpenDescription:   "%s, %s, %s",
	Opening:           "Opening browser...",
	Opened:            "Opened photo %d in the browser",
	Untrusted:         "Refusing to open untrusted image URL",
	RetryHint:         "r: retry",
	Yes:               "Open",
	No:                "Back",
	FormHelp:          "tab/shift+tab: move | up/down: suggestions | ctrl+s: search | ctrl+r: recent | esc: quit",
	ResultsHelp:       "enter: open | n/p: page | r: retry | /: edit search | q: quit",
	FieldTitles: map[Field]string{
		FieldID:             "ID",
		FieldSol:            "Sol",
		FieldCamera:         "Camera",
		FieldCameraFullName: "Camera name",
		FieldEarthDate:      "Earth date",
		FieldRover:          "Rover",
		FieldImgSrc:         "Image",
	},
}

var portugueseMessages = Messages{
	Title:             "Fotos dos Rovers de Marte",
	RoverLabel:        "Rover",
	CameraLabel:       "Câmera",
	DateLabel:         "Data",
	RoverPlaceholder:  "Digite o nome do rover",
	CameraPlaceholder: "Qualquer câmera",
	CameraDisabled:    "Escolha um rover primeiro",
	DatePlaceholder:   "AAAA-MM-DD",
	RequiredOption:    "Escolha uma das opções disponíveis",
	InvalidRover:      "Rover inválido",
	DateRequired:      "Data obrigatória",
	DateFormat:        "Use o formato AAAA-MM-DD",
	Submit:            "Buscar",
	Loading:           "Carregando fotos...",
	CheckingNext:      "verificando próxima página",
	NoResults:         "Nenhuma foto encontrada.",
	ErrorPrefix:       "Erro",
	Page:              "Página",
	Featured:          "Destaques: Curiosity, sol 1000",
	FeaturedLoading:   "Carregando destaques...",
	FeaturedEmpty:     "Nenhum destaque.",
	Recent:            "Buscas recentes",
	OpenTitle:         "Abrir a foto %d no navegador?",
	OpenDescription:   "%s, %s, %s",
	Opening:           "Abrindo navegador...",
	Opened:            "Foto %d aberta no navegador",
	Untrusted:         "URL de imagem não confiável",
	RetryHint:         "r: tentar de novo",
	Yes:               "Abrir",
	No:                "Voltar",
	FormHelp:          "tab/shift+tab: mover | cima/baixo: sugestões | ctrl+s: buscar | ctrl+r: recentes | esc: sair",
	ResultsHelp:       "enter: abrir | n/p: página | r: tentar de novo | /: editar busca | q: sair",
	FieldTitles: map[Field]string{
		FieldID:             "ID",
		FieldSol:            "Sol",
		FieldCamera:         "Câmera",
		FieldCameraFullName: "Nome da câmera",
		FieldEarthDate:      "Data",
		FieldRover:          "Rover",
		FieldImgSrc:         "Imagem",
	},
}

// ConfigForLocale returns the view configuration for locale.
// Unknown locales fall back to English.
func ConfigForLocale(locale string) ViewConfig {
	cfg := ViewConfig{
		Locale:           LocaleEnglish,
		Messages:         englishMessages,
		Columns:          DefaultColumns,
		SuggestionHeight: 6,
		RecentLimit:      5,
		FeaturedLimit:    8,
	}
	if strings.EqualFold(locale, LocalePortuguese) {
		cfg.Locale = LocalePortuguese
		cfg.Messages = portugueseMessages
	}
	return cfg
}

// FieldTitle returns the column header for f
func (m Messages) FieldTitle(f Field) string {
	if t, ok := m.FieldTitles[f]; ok {
		return t
	}
	return string(f)
}

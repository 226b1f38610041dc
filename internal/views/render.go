package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"

	"github.com/papana-farm/metdash/internal/models"
	"github.com/papana-farm/metdash/internal/presenter"
)

var dashboardTmpl *template.Template

// loadTemplatesFromFS parses the dashboard templates found under dir in fsys.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	dashboardTmpl = tmpl
	return nil
}

// LoadTemplates loads the embedded templates. Call during startup; do not serve on error.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// DashboardData is the view model of the single dashboard page.
type DashboardData struct {
	Locations []models.Location
	Variables []models.VariableOption

	Place     string
	Variable  models.Variable
	// Selected is nil when Place is not a known location.
	Selected  *models.Location
	StartDate string
	EndDate   string

	// InputError is set when the submitted form could not be turned into a query.
	InputError string

	Result *ResultData
}

// ResultData is present only after an explicit fetch.
type ResultData struct {
	Error string

	Table            presenter.Table
	ChartTitle       string
	ChartSVG         template.HTML
	ChartUnavailable bool
}

func NewDashboardData(s models.Session) *DashboardData {
	d := &DashboardData{
		Locations: models.Locations(),
		Variables: models.VariableOptions(),
		Variable:  s.Variable,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
	}
	d.SelectPlace(s.Place)
	return d
}

// SelectPlace sets the place shown as selected along with its coordinates.
func (d *DashboardData) SelectPlace(name string) {
	d.Place = name
	d.Selected = nil
	if loc, err := models.LookupLocation(name); err == nil {
		d.Selected = &loc
	}
}

func RenderDashboard(w io.Writer, data *DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}

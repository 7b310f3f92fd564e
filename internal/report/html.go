package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rented123/tenant-screener/internal/dates"
	"github.com/rented123/tenant-screener/internal/types"
)

// Document is everything the HTML renderer needs to lay out one report.
type Document struct {
	ID          string
	FullName    string
	GeneratedAt time.Time
	Found       bool
	Person      types.CanonicalPerson
	Risk        types.RiskAssessment
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"dateRange": formatRangeNow,
	"monthYear": dates.FormatMonthYear,
	"absURL":    ToAbsoluteURL,
	"badge":     badgeClass,
	"locLabel":  func(l types.Location) string { return l.Label() },
}).Parse(reportHTML))

// RenderHTML produces the full standalone HTML document for a report.
func RenderHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}

const reportHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Background Check Report {{.ID}}</title>
<style>
body{font-family:Helvetica,Arial,sans-serif;color:#1c1917;margin:0;padding:1.2rem;font-size:13px;line-height:1.45;}
h1{font-size:20px;margin:0 0 2px 0;}
h2{font-size:14px;border-bottom:1px solid #d6d3d1;padding-bottom:3px;margin:18px 0 8px 0;}
.meta{color:#57534e;font-size:11px;margin-bottom:10px;}
.badge{display:inline-block;padding:2px 10px;border-radius:10px;font-weight:700;font-size:11px;text-transform:uppercase;}
.badge-low{background:#dcfce7;color:#166534;border:1px solid #86efac;}
.badge-medium{background:#fef9c3;color:#854d0e;border:1px solid #fde047;}
.badge-high{background:#fee2e2;color:#991b1b;border:1px solid #fca5a5;}
table{width:100%;border-collapse:collapse;font-size:12px;margin-bottom:6px;}
th,td{border:1px solid #d6d3d1;padding:4px 6px;text-align:left;vertical-align:top;}
thead th{background:#f5f5f4;font-weight:700;}
ul{margin:4px 0;padding-left:18px;}
a{color:#1d4ed8;}
.notice{background:#f5f5f4;border:1px solid #d6d3d1;padding:10px;border-radius:4px;}
.summary{background:#f8fafc;border-left:3px solid #94a3b8;padding:8px 10px;}
</style>
</head>
<body>
<h1>Background Check Report</h1>
<div class="meta">Report {{.ID}} &middot; {{.FullName}} &middot; Generated {{.GeneratedAt.Format "January 2, 2006"}}</div>
<div><span class="badge {{badge .Risk.Level}}">{{.Risk.Level}} risk</span></div>

{{if not .Found}}
<h2>Result</h2>
<div class="notice">No public records matching this individual were found. A lack of online presence is common and is not itself a negative signal.</div>
{{else}}

{{if .Person.ShortSummary}}
<h2>Summary</h2>
<div class="summary">{{.Person.ShortSummary}}</div>
{{end}}

{{if .Risk.Reasons}}
<h2>Risk Factors</h2>
<ul>
{{range .Risk.Reasons}}<li>{{.}}</li>
{{end}}</ul>
{{end}}

{{if .Person.LocationHistory}}
<h2>Location History</h2>
<table>
<thead><tr><th>Location</th><th>Period</th></tr></thead>
<tbody>
{{range .Person.LocationHistory}}<tr><td>{{locLabel .}}</td><td>{{dateRange .Start .End}}</td></tr>
{{end}}</tbody>
</table>
{{end}}

{{if .Person.LegalAppearances}}
<h2>Legal Appearances</h2>
<table>
<thead><tr><th>Date</th><th>Title</th><th>Description</th><th>Location</th><th>Source</th></tr></thead>
<tbody>
{{range .Person.LegalAppearances}}<tr><td>{{monthYear .Date}}</td><td>{{.Title}}</td><td>{{.Description}}</td><td>{{.Location}}</td><td>{{if .Link}}<a href="{{absURL .Link}}">link</a>{{end}}</td></tr>
{{end}}</tbody>
</table>
{{end}}

{{if .Person.EmploymentHistory}}
<h2>Employment History</h2>
<table>
<thead><tr><th>Company</th><th>Position</th><th>Period</th></tr></thead>
<tbody>
{{range .Person.EmploymentHistory}}<tr><td>{{.Company}}</td><td>{{.Position}}</td><td>{{dateRange .StartDate .EndDate}}</td></tr>
{{end}}</tbody>
</table>
{{end}}

{{if .Person.EducationHistory}}
<h2>Education</h2>
<table>
<thead><tr><th>School</th><th>Degree</th><th>Location</th><th>Period</th></tr></thead>
<tbody>
{{range .Person.EducationHistory}}<tr><td>{{.School}}</td><td>{{.Degree}}</td><td>{{.Location}}</td><td>{{dateRange .StartDate .EndDate}}</td></tr>
{{end}}</tbody>
</table>
{{end}}

{{if .Person.CompanyRegistrations}}
<h2>Company Registrations</h2>
<ul>
{{range .Person.CompanyRegistrations}}<li>{{.Name}}{{if .Link}} (<a href="{{absURL .Link}}">source</a>){{end}}</li>
{{end}}</ul>
{{end}}

{{if .Person.PressMentions}}
<h2>Press Mentions</h2>
<table>
<thead><tr><th>Date</th><th>Topic</th><th>Description</th><th>Source</th></tr></thead>
<tbody>
{{range .Person.PressMentions}}<tr><td>{{monthYear .Date}}</td><td>{{.Topic}}</td><td>{{.Description}}</td><td>{{if .Link}}<a href="{{absURL .Link}}">link</a>{{end}}</td></tr>
{{end}}</tbody>
</table>
{{end}}

{{if .Person.SocialMediaProfiles}}
<h2>Online Profiles</h2>
<ul>
{{range .Person.SocialMediaProfiles}}<li>{{.Platform}}{{if .Link}}: <a href="{{absURL .Link}}">{{absURL .Link}}</a>{{end}}</li>
{{end}}</ul>
{{end}}

{{if .Person.PublicComments}}
<h2>Public Comments</h2>
<table>
<thead><tr><th>Date</th><th>Platform</th><th>Content</th><th>Source</th></tr></thead>
<tbody>
{{range .Person.PublicComments}}<tr><td>{{monthYear .Date}}</td><td>{{.Platform}}</td><td>{{.Content}}</td><td>{{if .Link}}<a href="{{absURL .Link}}">link</a>{{end}}</td></tr>
{{end}}</tbody>
</table>
{{end}}

{{if .Person.Others}}
<h2>Other Findings</h2>
<ul>
{{range .Person.Others}}<li>{{.Note}}{{if .Link}} (<a href="{{absURL .Link}}">source</a>){{end}}</li>
{{end}}</ul>
{{end}}

{{end}}
<h2>About This Report</h2>
<div class="meta">Findings are assembled from public web sources and an identity-graph lookup. Records may be incomplete or refer to a different person with the same name. This report is not a consumer report under FCRA and must not be used as the sole basis for a tenancy decision.</div>
</body>
</html>`

func badgeClass(level types.RiskLevel) string {
	return "badge-" + strings.ToLower(string(level))
}

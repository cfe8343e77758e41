//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"regexp"

	"github.com/e-gun/wego/pkg/search"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//
// GRAPHING
//

const (
	CHARTFONT = "sans-serif"
)

// chartpagetohtml - render any single chart into html+js for the frontpage's output div
func chartpagetohtml(chart components.Charter) string {
	// go-echarts is "too clever" and opaque about how to not do things its way
	// we override their page.Render() to yield html+js (see the ModX and CustomX code below)
	// this gets injected to the "vectorgraphing" div on the frontpage

	p := components.NewPage()
	p.Renderer = NewCustomPageRender(p, p.Validate)

	p.AddCharts(chart)
	p.Validate()

	var buf bytes.Buffer
	err := p.Render(&buf)
	chke(err)

	return buf.String()
}

// buildnngraph - generate the html and js for a nearest neighbors force graph
func buildnngraph(coreword string, settings string, extended bool, nn map[string]search.Neighbors) string {
	g := generatenngraph(coreword, settings, extended, nn)
	g.Validate()
	return chartpagetohtml(g)
}

// see also: https://echarts.apache.org/en/option.html#series-graph

func generatenngraph(coreword string, settings string, extended bool, nn map[string]search.Neighbors) *charts.Graph {
	const (
		SYMSIZE       = 25
		PERIPHSYMSZ   = 15
		SIZEDISTORT   = 2.25
		PRECISON      = 4
		REPULSION     = 6000
		GRAVITY       = .15
		EDGELEN       = 40
		EDGEFNTSZ     = 8
		SERIESNAME    = ""
		LAYOUTTYPE    = "force"
		LABELPOSITON  = "right"
		DOTHUE        = 236
		DOTSL         = ", 33%, 40%, 1)"
		LINECURVINESS = 0       // from 0 to 1, but non-zero will double-up the lines...
		LINETYPE      = "solid" // "solid", "dashed", "dotted"
	)

	graph := newsvgraph(settings, coreword)

	var gnn []opts.GraphNode
	var gll []opts.GraphLink
	valuelabel := opts.EdgeLabel{Show: true, FontSize: EDGEFNTSZ, Formatter: "{c}"}

	round := func(val float64) float32 {
		ratio := math.Pow(10, float64(PRECISON))
		return float32(math.Round(val*ratio) / ratio)
	}

	// find the max similarity: this will let you adjust bubble size so that most similar are biggest
	var maxsim float64
	for _, w := range nn[coreword] {
		if w.Similarity > maxsim {
			maxsim = w.Similarity
		}
	}

	vardot := func(i int) *opts.ItemStyle {
		dv := DOTHUE
		vd := "hsla(" + fmt.Sprintf("%d", dv) + DOTSL
		return &opts.ItemStyle{Color: vd}
	}

	used := make(map[string]bool)

	// the center point
	gnn = append(gnn, opts.GraphNode{Name: coreword, Value: 0, SymbolSize: fmt.Sprintf("%.4f", SYMSIZE*SIZEDISTORT), ItemStyle: vardot(-1)})
	used[coreword] = true

	// the words directly related to this word
	for i, w := range nn[coreword] {
		sizemod := fmt.Sprintf("%.4f", ((w.Similarity/maxsim)*SIZEDISTORT)*SYMSIZE)
		gnn = append(gnn, opts.GraphNode{Name: w.Word, Value: round(w.Similarity), SymbolSize: sizemod, ItemStyle: vardot(i)})
		gll = append(gll, opts.GraphLink{Source: coreword, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
		used[w.Word] = true
	}

	// the relationships between the other words
	coreterms := ToSet(StringMapKeysIntoSlice(nn))

	// populate the nodes with just the core collection of terms
	simpleweb := func() {
		for t := range coreterms {
			if t == coreword {
				continue
			}
			for _, w := range nn[t] {
				if _, ok := coreterms[w.Word]; ok {
					gll = append(gll, opts.GraphLink{Source: t, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
				}
			}
		}
	}

	// populate the nodes with both the core terms and the neighbors of those terms as well
	expandedweb := func() {
		i := -1
		for t := range coreterms {
			i += 1
			if t == coreword {
				continue
			}
			for _, w := range nn[t] {
				if _, ok := coreterms[w.Word]; ok {
					gll = append(gll, opts.GraphLink{Source: t, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
				}
				if _, ok := used[w.Word]; !ok {
					gnn = append(gnn, opts.GraphNode{Name: w.Word, Value: round(w.Similarity), SymbolSize: PERIPHSYMSZ, ItemStyle: vardot(i)})
					used[w.Word] = true
				}
				gll = append(gll, opts.GraphLink{Source: t, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
			}
		}
	}

	if extended {
		expandedweb()
	} else {
		simpleweb()
	}

	graph.AddSeries(SERIESNAME, gnn, gll,
		charts.WithLabelOpts(
			opts.Label{
				Show:       true,
				Position:   LABELPOSITON,
				FontFamily: CHARTFONT,
			},
		),
		charts.WithLineStyleOpts(
			opts.LineStyle{
				Curveness: LINECURVINESS,
				Type:      LINETYPE,
			}),
		charts.WithGraphChartOpts(
			// https://github.com/go-echarts/go-echarts/opts/charts.go
			// cf. https://echarts.apache.org/en/option.html#series-graph
			opts.GraphChart{
				Layout: LAYOUTTYPE,
				Force: &opts.GraphForce{
					Repulsion:  REPULSION,
					Gravity:    GRAVITY,
					EdgeLength: EDGELEN,
				},
				Roam:               true,
				FocusNodeAdjacency: true,
			},
		),
	)
	return graph
}

// newsvgraph - return a pre-formatted charts.Graph
func newsvgraph(settings string, coreword string) *charts.Graph {
	const (
		CHRTWIDTH  = "1500px"
		CHRTHEIGHT = "1000px"
		FONTSTYLE  = "normal"
		TITLESTR   = "Nearest neighbors of »%s«"
		LEFTALIGN  = "20"
		BOTTALIGN  = "3%"
		SAVETYPE   = "svg"
		SAVESTR    = "Save to file..."
		TEXTCOLOR  = ""
	)

	tst := opts.TextStyle{
		Color:      TEXTCOLOR,
		FontStyle:  FONTSTYLE,
		FontSize:   16,
		FontFamily: CHARTFONT,
		Padding:    "15",
		Normal:     nil,
	}

	sst := opts.TextStyle{
		Color:      TEXTCOLOR,
		FontStyle:  FONTSTYLE,
		FontSize:   10,
		FontFamily: CHARTFONT,
	}

	tit := opts.Title{
		Title:         fmt.Sprintf(TITLESTR, coreword),
		TitleStyle:    &tst,
		Subtitle:      settings, // can not see this if you put the title on the bottom of the image
		SubtitleStyle: &sst,
		Bottom:        BOTTALIGN,
		Left:          LEFTALIGN,
	}

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE, // svg, jpeg, png; svg requires specific chart initialization
		Name:  fmt.Sprintf(TITLESTR, coreword),
		Title: SAVESTR, // get chinese if ""
	}

	tbf := opts.ToolBoxFeature{
		SaveAsImage: &tbs,
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Left:    LEFTALIGN,
		Feature: &tbf,
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(tbo),
	)

	return graph
}

// buildtopicscatter - a t-SNE scatter of the document-topic mixtures; one series per dominant topic
func buildtopicscatter(title string, settings string, pts [][2]float64, topicof []int, ntopics int) string {
	const (
		CHRTWIDTH  = "1200px"
		CHRTHEIGHT = "900px"
		SERIESNAME = "topic %d"
		SYMBOLSZ   = 10
	)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: settings,
			TitleStyle: &opts.TextStyle{
				FontSize:   16,
				FontFamily: CHARTFONT,
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{Show: false, Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Show: false, Scale: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "5%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	for t := 0; t < ntopics; t++ {
		var data []opts.ScatterData
		for i := 0; i < len(pts); i++ {
			if topicof[i] != t {
				continue
			}
			data = append(data, opts.ScatterData{
				Value:      []float64{pts[i][0], pts[i][1]},
				SymbolSize: SYMBOLSZ,
			})
		}
		scatter.AddSeries(fmt.Sprintf(SERIESNAME, t+1), data)
	}

	scatter.Validate()
	return chartpagetohtml(scatter)
}

// buildsweepline - the PLSR component sweep: train and test error per component count plus the OLS baseline
func buildsweepline(title string, settings string, kk []int, trainrmse []float64, testrmse []float64, olstest float64) string {
	const (
		CHRTWIDTH  = "1200px"
		CHRTHEIGHT = "700px"
	)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: settings,
			TitleStyle: &opts.TextStyle{
				FontSize:   16,
				FontFamily: CHARTFONT,
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "components"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "RMSE", Scale: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "5%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)

	var xlabels []string
	var tr []opts.LineData
	var te []opts.LineData
	var ol []opts.LineData
	for i := 0; i < len(kk); i++ {
		xlabels = append(xlabels, fmt.Sprintf("%d", kk[i]))
		tr = append(tr, opts.LineData{Value: trainrmse[i]})
		te = append(te, opts.LineData{Value: testrmse[i]})
		ol = append(ol, opts.LineData{Value: olstest})
	}

	line.SetXAxis(xlabels).
		AddSeries("PLSR train", tr).
		AddSeries("PLSR test", te).
		AddSeries("OLS test (all columns)", ol,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))

	line.Validate()
	return chartpagetohtml(line)
}

// buildpredscatter - predicted vs actual for the best component count
func buildpredscatter(title string, settings string, actual []float64, predicted []float64) string {
	const (
		CHRTWIDTH  = "900px"
		CHRTHEIGHT = "700px"
		SYMBOLSZ   = 8
	)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: settings,
			TitleStyle: &opts.TextStyle{
				FontSize:   16,
				FontFamily: CHARTFONT,
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "actual", Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "predicted", Scale: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	var data []opts.ScatterData
	for i := 0; i < len(actual); i++ {
		data = append(data, opts.ScatterData{
			Value:      []float64{actual[i], predicted[i]},
			SymbolSize: SYMBOLSZ,
		})
	}
	scatter.AddSeries("held-out observations", data)

	scatter.Validate()
	return chartpagetohtml(scatter)
}

//
// OVERRIDE GO-ECHARTS [original code at https://github.com/go-echarts/go-echarts]
//

// ModRenderer etc modified from https://github.com/go-echarts/go-echarts/render/engine.go
type ModRenderer interface {
	Render(w io.Writer) error
}

type CustomPageRender struct {
	c      interface{}
	before []func()
}

// NewCustomPageRender returns a render implementation for Page.
func NewCustomPageRender(c interface{}, before ...func()) ModRenderer {
	return &CustomPageRender{c: c, before: before}
}

// Render renders the page into the given io.Writer.
func (r *CustomPageRender) Render(w io.Writer) error {
	const (
		TEMPLNAME = "chart"
		PATTERN   = `(__f__")|("__f__)|(__f__)`
	)

	for _, fn := range r.before {
		fn()
	}

	contents := []string{CustomHeaderTpl, CustomBaseTpl, CustomPageTpl}
	tpl := ModMustTemplate(TEMPLNAME, contents)

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, TEMPLNAME, r.c); err != nil {
		return err
	}

	pat := regexp.MustCompile(PATTERN)
	content := pat.ReplaceAll(buf.Bytes(), []byte(""))

	_, err := w.Write(content)
	return err
}

// ModMustTemplate creates a new template with the given name and parsed contents.
func ModMustTemplate(name string, contents []string) *template.Template {
	const (
		JSNAME = "safeJS"
	)

	tpl := template.Must(template.New(name).Parse(contents[0])).Funcs(template.FuncMap{
		JSNAME: func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
	})

	for _, cont := range contents[1:] {
		tpl = template.Must(tpl.Parse(cont))
	}
	return tpl
}

// CustomHeaderTpl etc. adapted from https://github.com/go-echarts/go-echarts/templates/
var CustomHeaderTpl = `
{{ define "header" }}
<head>
	<!-- CustomHeaderTpl -->
    <meta charset="utf-8">
    <title>{{ .PageTitle }}</title>
{{- range .JSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CustomizedJSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
{{- range .CustomizedCSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
</head>
{{ end }}
`

var CustomBaseTpl = `
{{- define "base" }}
<!-- CustomBaseTpl -->
<div class="container">
    <div class="item" id="{{ .ChartID }}" style="width:{{ .Initialization.Width }};height:{{ .Initialization.Height }};"></div>
</div>
<script type="text/javascript">
    "use strict";
    let goecharts_{{ .ChartID | safeJS }} = echarts.init(document.getElementById('{{ .ChartID | safeJS }}'), "{{ .Theme }}");
    let option_{{ .ChartID | safeJS }} = {{ .JSONNotEscaped | safeJS }};
	let action_{{ .ChartID | safeJS }} = {{ .JSONNotEscapedAction | safeJS }};
    goecharts_{{ .ChartID | safeJS }}.setOption(option_{{ .ChartID | safeJS }});
 	goecharts_{{ .ChartID | safeJS }}.dispatchAction(action_{{ .ChartID | safeJS }});

    {{- range .JSFunctions.Fns }}
    {{ . | safeJS }}
    {{- end }}
</script>
{{ end }}
`

var CustomPageTpl = `
{{- define "chart" }}
	<!-- "style" overridden because it is set in hypatiastyles.css -->
	<!-- CustomPageTpl -->
	{{ if eq .Layout "none" }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}

	{{ if eq .Layout "center" }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}

	{{ if eq .Layout "flex" }}
		<div class="box"> {{- range .Charts }} {{ template "base" . }} {{- end }} </div>
	{{ end }}
{{ end }}
`

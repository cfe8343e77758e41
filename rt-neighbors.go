//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"strings"

	"github.com/e-gun/wego/pkg/search"
	"github.com/labstack/echo/v4"
)

// NeighborsSearch - train/fetch a word embedding model and report the nearest neighbors of a word
func NeighborsSearch(c echo.Context) error {
	const (
		SETTINGS = `model type: %s; text prep: %s`
		NOTFOUND = `<p class="emph">The model has no entry for »<span class="colorhighlight">%s</span>«. Try a more common word.</p>`
	)

	c.Response().After(func() { messenger.LogPaths("NeighborsSearch()") })

	user := readUUIDCookie(c)
	se := SafeSessionRead(user)

	term := strings.ToLower(strings.TrimSpace(c.Param("term")))
	if term == "" {
		return JSONresponse(c, SearchOutputJSON{Title: "Neighbors", Found: "(no word given)"})
	}

	jobid := NewModelJob(c.QueryParam("id"), user, "neighbors", fmt.Sprintf("Neighbors of '%s'", term), 0)
	defer AllJobs.Retire(jobid)

	nn := generateneighborsdata(se, term, jobid)
	set := fmt.Sprintf(SETTINGS, se.VecModeler, se.VecTextPrep)

	neighbors := nn[term]

	if len(neighbors) == 0 {
		soj := SearchOutputJSON{
			Title: fmt.Sprintf("Neighbors of '%s'", term),
			Found: fmt.Sprintf(NOTFOUND, term),
			JS:    VECTORJS,
		}
		return JSONresponse(c, soj)
	}

	// [a] prepare the image output
	img := buildnngraph(term, set, se.VecGraphExt, nn)

	// [b] prepare text output
	out := neighborstable(term, neighbors, se.VecModeler, se.VecTextPrep)

	soj := SearchOutputJSON{
		Title:         fmt.Sprintf("Neighbors of '%s'", term),
		Searchsummary: "",
		Found:         out,
		Image:         img,
		JS:            VECTORJS,
	}

	return JSONresponse(c, soj)
}

// neighborstable - the two-column neighbors table; the first column gets the extra row when the count is odd
func neighborstable(term string, neighbors search.Neighbors, modeler string, textprep string) string {
	const (
		NTH      = 3
		THETABLE = `
	<table class="vectortable"><tbody>
    <tr class="vectorrow">
        <td class="vectorrank" colspan = "7">Nearest neighbors of »<span class="colorhighlight">%s</span>«</td>
    </tr>
	<tr class="vectorrow">
		<td class="vectorrank">Rank</td>
		<td class="vectorrank">Distance</td>
		<td class="vectorrank">Word</td>
		<td class="vectorrank">&nbsp;&nbsp;&nbsp;</td>
		<td class="vectorrank">Rank</td>
		<td class="vectorrank">Distance</td>
		<td class="vectorrank">Word</td>
	</tr>
    %s
    <tr class="vectorrow">
        <td class="vectorrank small" colspan = "7">(model type: <code>%s</code>; text prep: <code>%s</code>)</td>
    </tr>
	</tbody></table>
	<hr>`

		TABLEROW = `
	<tr class="%s">%s
		<td class="vectorword">&nbsp;&nbsp;&nbsp;</td>%s
	</tr>`

		TABLEELEM = `
		<td class="vectorrank">%d</td>
		<td class="vectorscore">%.4f</td>
		<td class="vectorword"><vectorheadword id="%s">%s</vectorheadword></td>`
	)

	var columnone []string
	var columntwo []string

	half := (len(neighbors) + 1) / 2
	for i, n := range neighbors {
		r := fmt.Sprintf(TABLEELEM, n.Rank, n.Similarity, n.Word, n.Word)
		if i < half {
			columnone = append(columnone, r)
		} else {
			columntwo = append(columntwo, r)
		}
	}

	var tablerows []string
	for i := range columnone {
		rn := "vectorrow"
		if i%NTH == 0 {
			rn = "nthrow"
		}
		two := ""
		if i < len(columntwo) {
			two = columntwo[i]
		}
		tablerows = append(tablerows, fmt.Sprintf(TABLEROW, rn, columnone[i], two))
	}

	return fmt.Sprintf(THETABLE, term, strings.Join(tablerows, "\n"), modeler, textprep)
}

// RtResetVectors - drop the stored vector models and start over
func RtResetVectors(c echo.Context) error {
	const (
		MSG = "Stored vector models have been reset"
	)
	vectorcachereset()
	msg(MSG, MSGNOTE)
	return RtFrontpage(c)
}

// RtVectorCount - report the size of the model cache
func RtVectorCount(c echo.Context) error {
	if SQLPool != nil {
		vectordbcountnn(MSGMAND)
	}
	return c.JSONPretty(200, "ok", JSONINDENT)
}

//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// RegressionSearch - PLSR vs OLS on a seeded synthetic dataset: sweep the component count and compare held-out error
func RegressionSearch(c echo.Context) error {
	const (
		DMSG     = `Drawing the synthetic dataset`
		SMSG     = `Sweeping component counts: %d of %d`
		OMSG     = `Fitting the OLS baseline`
		TITLE    = `PLSR vs OLS on synthetic latent-factor data`
		SWEEPT   = `RMSE by component count`
		PREDT    = `Predicted vs actual, %d components`
		OLSFAIL  = `OLS refused: %s`
		FAILPLS  = "RegressionSearch() PLSR fit failed at k=%d: %s"
		FAILPRED = "RegressionSearch() prediction failed at k=%d: %s"
	)

	c.Response().After(func() { messenger.LogPaths("RegressionSearch()") })

	start := time.Now()

	user := readUUIDCookie(c)
	se := SafeSessionRead(user)

	highlight := se.PLSComponents
	if n, err := strconv.Atoi(c.Param("comp")); err == nil && n >= 1 && n <= PLSMAXSWEEP {
		highlight = n
	}

	jobid := NewModelJob(c.QueryParam("id"), user, "regression", "PLSR component sweep", PLSMAXSWEEP)
	defer AllJobs.Retire(jobid)

	// [a] the data

	AllJobs.Progress(jobid, 0, DMSG)

	settings := settingsfromsession(se)
	x, y := SyntheticPLS(settings)
	xtr, ytr, xte, yte := TrainTestSplit(x, y, TESTFRACTION, settings.Seed)

	_, cols := x.Dims()
	maxk := PLSMAXSWEEP
	if maxk > cols {
		maxk = cols
	}
	if highlight > maxk {
		highlight = maxk
	}

	// [b] the sweep

	var kk []int
	var trainrmse []float64
	var testrmse []float64
	var highlightpred []float64

	for k := 1; k <= maxk; k++ {
		AllJobs.Progress(jobid, k, fmt.Sprintf(SMSG, k, maxk))

		pls := NewPLSRegression(k)
		if err := pls.Fit(xtr, ytr); err != nil {
			msg(fmt.Sprintf(FAILPLS, k, err.Error()), MSGWARN)
			continue
		}

		ptr, err := pls.Predict(xtr)
		if err != nil {
			msg(fmt.Sprintf(FAILPRED, k, err.Error()), MSGWARN)
			continue
		}
		pte, err := pls.Predict(xte)
		if err != nil {
			msg(fmt.Sprintf(FAILPRED, k, err.Error()), MSGWARN)
			continue
		}

		kk = append(kk, k)
		trainrmse = append(trainrmse, rootmeansquarederror(ytr, ptr))
		testrmse = append(testrmse, rootmeansquarederror(yte, pte))

		if k == highlight {
			highlightpred = pte
		}
	}

	// [c] the baseline: OLS on every column at once

	AllJobs.Progress(jobid, maxk, OMSG)

	olsnote := ""
	olsrmse := 0.0
	olsr2 := 0.0
	var ols OLSRegression
	if err := ols.Fit(xtr, ytr); err != nil {
		olsnote = fmt.Sprintf(OLSFAIL, err.Error())
		msg(olsnote, MSGNOTE)
	} else {
		pte, err := ols.Predict(xte)
		if err != nil {
			olsnote = fmt.Sprintf(OLSFAIL, err.Error())
		} else {
			olsrmse = rootmeansquarederror(yte, pte)
			olsr2 = rsquared(yte, pte)
		}
	}

	// [d] the report

	set := settings.Describe()

	found := sweeptable(kk, trainrmse, testrmse, highlight, olsnote, olsrmse, olsr2)

	img := buildsweepline(SWEEPT, set, kk, trainrmse, testrmse, olsrmse)
	if len(highlightpred) > 0 {
		img += buildpredscatter(fmt.Sprintf(PREDT, highlight), set, yte, highlightpred)
	}

	soj := SearchOutputJSON{
		Title:         TITLE,
		Searchsummary: fmt.Sprintf("%s; %.2fs", set, time.Now().Sub(start).Seconds()),
		Found:         found,
		Image:         img,
		JS:            VECTORJS,
	}

	return JSONresponse(c, soj)
}

// sweeptable - the per-k error table plus the OLS baseline row
func sweeptable(kk []int, trainrmse []float64, testrmse []float64, highlight int, olsnote string, olsrmse float64, olsr2 float64) string {
	const (
		THETABLE = `
	<table class="vectortable"><tbody>
    <tr class="vectorrow">
        <td class="vectorrank" colspan = "4">RMSE by PLSR component count</td>
    </tr>
	<tr class="vectorrow">
		<td class="vectorrank">Components</td>
		<td class="vectorrank">Train RMSE</td>
		<td class="vectorrank">Test RMSE</td>
		<td class="vectorrank">&nbsp;</td>
	</tr>
    %s
    %s
	</tbody></table>
	<hr>`

		TABLEROW = `
	<tr class="%s">
		<td class="vectorrank">%d</td>
		<td class="vectorscore">%.4f</td>
		<td class="vectorscore">%.4f</td>
		<td class="vectorword">%s</td>
	</tr>`

		OLSROW = `
	<tr class="vectorrow">
		<td class="vectorrank">OLS (all columns)</td>
		<td class="vectorscore">&nbsp;</td>
		<td class="vectorscore">%.4f</td>
		<td class="vectorword">R&#178; = %.4f</td>
	</tr>`

		OLSNOTEROW = `
	<tr class="vectorrow">
		<td class="vectorrank">OLS (all columns)</td>
		<td class="vectorword" colspan = "3">%s</td>
	</tr>`

		NTH = 2
	)

	// the best k by held-out error
	best := -1
	for i := range kk {
		if best < 0 || testrmse[i] < testrmse[best] {
			best = i
		}
	}

	var rows []string
	for i := range kk {
		rn := "vectorrow"
		if i%NTH == 0 {
			rn = "nthrow"
		}
		note := ""
		if i == best {
			note = "&#8592; best held-out error"
		}
		if kk[i] == highlight {
			note = strings.TrimSpace(note + " (selected)")
		}
		rows = append(rows, fmt.Sprintf(TABLEROW, rn, kk[i], trainrmse[i], testrmse[i], note))
	}

	olsrow := fmt.Sprintf(OLSROW, olsrmse, olsr2)
	if olsnote != "" {
		olsrow = fmt.Sprintf(OLSNOTEROW, olsnote)
	}

	return fmt.Sprintf(THETABLE, strings.Join(rows, "\n"), olsrow)
}

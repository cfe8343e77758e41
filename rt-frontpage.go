//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime"
	"text/template"

	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtFrontpage - send the html for "/"
func RtFrontpage(c echo.Context) error {
	// will set if missing
	user := readUUIDCookie(c)
	s := SafeSessionRead(user)

	env := fmt.Sprintf("%s: %s - %s (%d workers)", runtime.Version(), runtime.GOOS, runtime.GOARCH, Config.WorkerCount)

	subs := map[string]interface{}{
		"version":     VERSION,
		"env":         env,
		"user":        s.LoginName,
		"vecmodeler":  s.VecModeler,
		"vectextprep": s.VecTextPrep,
		"vecneighbct": s.VecNeighbCt,
		"topicmethod": s.TopicMethod,
		"topicct":     s.TopicCt,
		"plscomp":     s.PLSComponents,
		"synthnoise":  s.SynthNoise,
		"synthseed":   s.SynthSeed,
	}

	tmpl, e := template.New("fp").Parse(FRONTPAGEHTML)
	chke(e)

	var b bytes.Buffer
	err := tmpl.Execute(&b, subs)
	chke(err)

	return c.HTML(http.StatusOK, b.String())
}

// RtCSS - send the stylesheet
func RtCSS(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css", []byte(HYPATIASTYLES))
}

const (
	FRONTPAGEHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Hypatia Golang Server</title>
    <link rel="stylesheet" href="/emb/css/hypatiastyles.css">
</head>
<body>
<div id="headerblock">
    <span class="title">Hypatia</span> <span class="version">v{{index . "version" }}</span>
    <span class="env">{{index . "env" }}</span>
</div>

<div id="exerciseone" class="exercise">
    <span class="exercisename">[1] Word neighbors (literary corpus)</span><br>
    <input id="neighborsterm" type="text" placeholder="[a word, e.g. whale]" size="24">
    <button onclick="executeneighborssearch(document.getElementById('neighborsterm').value);">Find neighbors</button>
    <select id="vecmodeler" onchange="setoption('vecmodeler', this.value);">
        <option value="w2v">word2vec</option>
        <option value="glove">glove</option>
        <option value="lexvec">lexvec</option>
    </select>
    <select id="vectextprep" onchange="setoption('vectextprep', this.value);">
        <option value="plain">plain text</option>
        <option value="folded">folded variants</option>
    </select>
    <input id="vecneighbct" type="number" min="3" max="40" value="{{index . "vecneighbct" }}"
        onchange="setoption('vecneighbct', this.value);" title="neighbors to report">
    <label><input id="vecgraphext" type="checkbox" onchange="setoption('vecgraphext', this.checked ? 'yes' : 'no');">extended graph</label>
</div>

<div id="exercisetwo" class="exercise">
    <span class="exercisename">[2] Topic models (newsgroup corpus)</span><br>
    <select id="topicmethod" onchange="setoption('topicmethod', this.value);">
        <option value="lda">LDA</option>
        <option value="lsa">LSA</option>
        <option value="nmf">NMF</option>
        <option value="all">compare all three</option>
    </select>
    <input id="topicct" type="number" min="2" max="30" value="{{index . "topicct" }}"
        onchange="setoption('topicct', this.value);" title="topic count">
    <label><input id="topicgraph" type="checkbox" checked onchange="setoption('topicgraph', this.checked ? 'yes' : 'no');">t-SNE plot</label>
    <button onclick="executetopicsearch();">Model topics</button>
</div>

<div id="exercisethree" class="exercise">
    <span class="exercisename">[3] PLSR vs OLS (synthetic data)</span><br>
    <input id="plscomponents" type="number" min="1" max="12" value="{{index . "plscomp" }}"
        onchange="setoption('plscomponents', this.value);" title="components to highlight">
    noise: <input id="synthnoise" type="text" size="5" value="{{index . "synthnoise" }}"
        onchange="setoption('synthnoise', this.value);">
    seed: <input id="synthseed" type="number" min="0" value="{{index . "synthseed" }}"
        onchange="setoption('synthseed', this.value);">
    <button onclick="executeregression();">Run the sweep</button>
</div>

<div id="utility">
    <a href="/reset/session">reset session</a> | <a href="/reset/vectors">reset stored models</a> | <a href="/stats">server stats</a>
</div>

<div id="pollingdata"></div>
<div id="searchsummary"></div>
<div id="displayresults"></div>
<div id="vectorgraphing"></div>
<div id="browserclickscriptholder"></div>

<script>
    function generateId(len) {
        const chars = 'abcdef0123456789';
        let out = '';
        for (let i = 0; i < len; i++) { out += chars.charAt(Math.floor(Math.random() * chars.length)); }
        return out;
    }

    function setoption(opt, val) {
        fetch('/setoption/' + opt + '/' + val);
    }

    function checkactivityviawebsocket(jobid) {
        const ws = new WebSocket('ws://' + location.host + '/ws');
        ws.onopen = function () { ws.send(JSON.stringify(jobid)); };
        ws.onmessage = function (ev) {
            const progress = JSON.parse(ev.data);
            let pd = progress['Statusmessage'] + '&nbsp;(' + progress['Elapsed'] + ')';
            if (progress['Poolofwork'] > 0) {
                pd += '<br>' + progress['Doneofwork'] + ' of ' + progress['Poolofwork'];
            }
            document.getElementById('pollingdata').innerHTML = pd;
        };
    }

    function loadnewres(output) {
        document.title = output['title'];
        document.getElementById('searchsummary').innerHTML = output['searchsummary'];
        document.getElementById('displayresults').innerHTML = output['found'];
        document.getElementById('vectorgraphing').innerHTML = output['image'];
        rerunscripts('vectorgraphing');
        let clickscript = document.createElement('script');
        clickscript.innerHTML = output['js'];
        document.getElementById('browserclickscriptholder').appendChild(clickscript);
    }

    // innerHTML will not execute the chart js; it has to be re-inserted
    function rerunscripts(divname) {
        document.getElementById(divname).querySelectorAll('script').forEach(function (os) {
            const ns = document.createElement('script');
            ns.text = os.text;
            os.parentNode.replaceChild(ns, os);
        });
    }

    function executefetch(url, jobid) {
        document.getElementById('displayresults').innerHTML = '';
        document.getElementById('vectorgraphing').innerHTML = '';
        checkactivityviawebsocket(jobid);
        fetch(url)
            .then((response) => response.json())
            .then((output) => loadnewres(output));
    }

    function executeneighborssearch(term) {
        if (!term) { return; }
        const jobid = generateId(8);
        executefetch('/neighbors/exec/' + encodeURIComponent(term) + '?id=' + jobid, jobid);
    }

    function executetopicsearch() {
        const jobid = generateId(8);
        const method = document.getElementById('topicmethod').value;
        executefetch('/topics/exec/' + method + '?id=' + jobid, jobid);
    }

    function executeregression() {
        const jobid = generateId(8);
        const comp = document.getElementById('plscomponents').value;
        executefetch('/regression/exec/' + comp + '?id=' + jobid, jobid);
    }

    document.getElementById('neighborsterm').addEventListener('keyup', function (ev) {
        if (ev.key === 'Enter') { executeneighborssearch(this.value); }
    });

    document.getElementById('vecmodeler').value = '{{index . "vecmodeler" }}';
    document.getElementById('vectextprep').value = '{{index . "vectextprep" }}';
    document.getElementById('topicmethod').value = '{{index . "topicmethod" }}';
</script>
</body>
</html>`

	HYPATIASTYLES = `
body { font-family: 'Noto Sans', sans-serif; margin: 1em 2em; color: #2a2a2a; }
#headerblock { border-bottom: 1px solid #5d5849; padding-bottom: 0.5em; margin-bottom: 1em; }
#headerblock .title { font-size: 1.4em; font-weight: bold; color: #4a4435; }
#headerblock .version { color: #8a8371; }
#headerblock .env { float: right; color: #8a8371; font-size: 0.8em; }
.exercise { margin-bottom: 0.75em; }
.exercisename { font-weight: bold; color: #4a4435; }
#utility { font-size: 0.8em; margin-bottom: 1em; }
#pollingdata { color: #7a0e0e; min-height: 2.5em; }
#searchsummary { color: #5d5849; margin-bottom: 0.5em; }
.vectortable { border-collapse: collapse; margin-top: 0.5em; }
.vectortable td { padding: 0.15em 0.6em; }
.vectorrank { font-weight: bold; color: #4a4435; }
.vectorscore { font-family: monospace; }
.vectorword { color: #2a2a2a; }
.vectorloc { font-family: monospace; color: #5d5849; }
.nthrow { background-color: #efede6; }
.small { font-size: 0.8em; font-weight: normal; }
.emph { font-weight: bold; }
.colorhighlight { color: #7a0e0e; }
vectorheadword { cursor: pointer; color: #30508a; }
vectorheadword:hover { text-decoration: underline; }
`
)

//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"regexp"
	"strings"
)

//
// CLEANING
//

// the markup/mail-header deletions applied before sentence splitting; note that these run pre-lowercasing
var TAGSTOPURGE = []string{
	`(?m)^(From|Subject|Organization|Lines|Keywords|Distribution|Nntp-Posting-Host|Reply-To|Summary):.*$`,
	`(?m)^In article <.*$`,
	`(?m)^>.*$`,
	`\S+@\S+`,
	`<[^>]*>`,
	`\(([A-Z][a-z]+ ?)+\)`,
}

// whatever survives the purge that is not a letter or a space gets zapped after lowercasing
var NOTACHAR = []string{`[^a-z\s]`}

func stripper(item string, purge []string) string {
	// delete each in a list of items from a string
	for i := 0; i < len(purge); i++ {
		re := regexp.MustCompile(purge[i])
		item = re.ReplaceAllString(item, "")
	}
	return item
}

func makesubstitutions(thetext string) string {
	// https://golang.org/pkg/strings/#NewReplacer
	// contractions and honorifics expand so the tokens are real words and the periods are real stops
	swap := strings.NewReplacer("won't", "will not", "Won't", "Will not", "can't", "cannot", "Can't", "Cannot",
		"shan't", "shall not", "n't", " not", "'re", " are", "'ve", " have", "'ll", " will", "'m", " am",
		"'d", " would", "Mr.", "Mr", "Mrs.", "Mrs", "Ms.", "Ms", "Dr.", "Dr", "St.", "Saint", "Prof.", "Professor",
		"Jr.", "Junior", "Sr.", "Senior", "etc.", "etc", "vs.", "vs", "e.g.", "eg", "i.e.", "ie", "cf.", "cf")

	return swap.Replace(thetext)
}

func splitonpunctuaton(thetext string) []string {
	// swap all punctuation for one item; then split on it...
	swap := strings.NewReplacer("?", ".", "!", ".", ";", ".", ":", ".")
	thetext = swap.Replace(thetext)
	split := strings.Split(thetext, ".")
	return split
}

func dropstopwords(skipper string, bagsofwords []BagWithSource) []BagWithSource {
	// set up the skiplist; then iterate through the bags returning new, clean bags
	s := strings.Split(skipper, " ")
	sm := make(map[string]bool)
	for i := 0; i < len(s); i++ {
		sm[s[i]] = true
	}

	for i := 0; i < len(bagsofwords); i++ {
		wl := strings.Split(bagsofwords[i].Bag, " ")
		wl = stopworddropper(sm, wl)
		bagsofwords[i].Bag = strings.Join(wl, " ")
	}

	return bagsofwords
}

func stopworddropper(stops map[string]bool, wordlist []string) []string {
	// if word is in stops, drop the word
	var returnlist []string
	for i := 0; i < len(wordlist); i++ {
		if _, t := stops[wordlist[i]]; t {
			continue
		} else {
			returnlist = append(returnlist, wordlist[i])
		}
	}
	return returnlist
}

//
// BAGGING
//

// BagWithSource - a bag of words and the location (corpus/docid/seq) of the sentence it came from
type BagWithSource struct {
	Loc string
	Bag string
}

// GetWL - the bag as a slice of words
func (b BagWithSource) GetWL() []string {
	return strings.Split(b.Bag, " ")
}

// preptextbags - turn stored lines into tagged, cleaned, stopword-free bags of words
func preptextbags(docs []DbDocument, folded bool) []BagWithSource {
	const (
		TAGTMPL = `⊏%s/%s/%d⊐`
	)

	// [a] one long string with a location tag before every line
	var sb strings.Builder
	for i := 0; i < len(docs); i++ {
		tag := fmt.Sprintf(TAGTMPL, docs[i].Corpus, docs[i].DocID, docs[i].Seq)
		sb.WriteString(tag + docs[i].Text + " ")
	}

	thetext := sb.String()

	// [b] clean and split
	thetext = stripper(thetext, TAGSTOPURGE)
	thetext = makesubstitutions(thetext)
	thetext = strings.ToLower(thetext)

	split := splitonpunctuaton(thetext)

	// [c] every sentence keeps the first tag it contains; interior tags are noise
	findtag := regexp.MustCompile(`⊏(.*?)⊐`)

	var bags []BagWithSource
	last := "unknown"
	for i := 0; i < len(split); i++ {
		tags := findtag.FindStringSubmatch(split[i])
		if len(tags) > 1 {
			last = tags[1]
		}
		bag := findtag.ReplaceAllString(split[i], " ")
		bag = stripper(bag, NOTACHAR)
		if folded {
			bag = foldvariants(bag)
		}
		bag = strings.Join(strings.Fields(bag), " ")
		if bag == "" {
			continue
		}
		bags = append(bags, BagWithSource{Loc: last, Bag: bag})
	}

	// [d] the stoplist has the last word
	bags = dropstopwords(strings.Join(ENGLISHSTOP, " "), bags)

	var clean []BagWithSource
	for i := 0; i < len(bags); i++ {
		if strings.TrimSpace(bags[i].Bag) != "" {
			clean = append(clean, bags[i])
		}
	}

	return clean
}

// foldvariants - crude orthographic normalization: british/american spelling variants fold together
func foldvariants(thetext string) string {
	swap := strings.NewReplacer("our ", "or ", "ise ", "ize ", "ised ", "ized ", "yse ", "yze ",
		"colour", "color", "favour", "favor", "honour", "honor", "neighbour", "neighbor", "grey", "gray")
	return swap.Replace(thetext)
}

// buildtextblock - one whitespace-joined block of all the bags; this is what the embedding trainers eat
func buildtextblock(bags []BagWithSource) string {
	var sb strings.Builder
	for i := 0; i < len(bags); i++ {
		sb.WriteString(bags[i].Bag + "\n")
	}
	return sb.String()
}

//
// STOPWORDS
//

// ENGLISHSTOP - the high-frequency words that add nothing to the models
var ENGLISHSTOP = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and", "any", "are", "as", "at",
	"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
	"came", "come", "could", "did", "do", "does", "doing", "down", "during",
	"each", "few", "for", "from", "further", "get", "got",
	"had", "has", "have", "having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just",
	"like", "make", "many", "me", "more", "most", "much", "must", "my", "myself",
	"no", "nor", "not", "now", "of", "off", "on", "once", "one", "only", "or", "other", "our", "ours",
	"ourselves", "out", "over", "own",
	"said", "same", "say", "see", "she", "should", "so", "some", "still", "such",
	"than", "that", "the", "their", "theirs", "them", "themselves", "then", "there", "these", "they",
	"this", "those", "through", "to", "too",
	"under", "until", "up", "upon", "us", "very",
	"was", "we", "were", "what", "when", "where", "which", "while", "who", "whom", "why", "will", "with",
	"would", "you", "your", "yours", "yourself", "yourselves",
	"also", "back", "even", "ever", "every", "go", "going", "well", "writes", "article",
}

// getstopset - the stoplist as a set
func getstopset() map[string]struct{} {
	return ToSet(ENGLISHSTOP)
}

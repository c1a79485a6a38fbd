package analyzer

import "strings"

// polarity maps sentiment-bearing words to a signed weight in [-1, 1].
// The list is intentionally small; it backs the degraded sentiment path,
// not the model path.
var polarity = map[string]float64{
	"amazing": 0.9, "awesome": 0.9, "beautiful": 0.8, "best": 0.9,
	"better": 0.5, "brilliant": 0.9, "calm": 0.4, "cheerful": 0.7,
	"delighted": 0.9, "enjoy": 0.6, "enjoyed": 0.6, "excellent": 0.9,
	"excited": 0.7, "fantastic": 0.9, "fun": 0.6, "glad": 0.6,
	"good": 0.6, "grateful": 0.8, "great": 0.8, "happy": 0.8,
	"joy": 0.8, "joyful": 0.8, "laugh": 0.6, "laughed": 0.6,
	"love": 0.8, "loved": 0.8, "lovely": 0.8, "nice": 0.5,
	"peaceful": 0.6, "perfect": 0.9, "pleasant": 0.6, "positive": 0.5,
	"proud": 0.7, "relaxed": 0.5, "relieved": 0.5, "smile": 0.5,
	"sunny": 0.4, "thankful": 0.8, "wonderful": 0.9,

	"afraid": -0.6, "angry": -0.8, "annoyed": -0.5, "anxious": -0.6,
	"awful": -0.9, "bad": -0.6, "boring": -0.4, "cried": -0.7,
	"depressed": -0.9, "difficult": -0.4, "disappointed": -0.7,
	"dreadful": -0.9, "exhausted": -0.5, "fail": -0.6, "failed": -0.6,
	"fear": -0.6, "frustrated": -0.7, "hate": -0.8, "hated": -0.8,
	"horrible": -0.9, "hurt": -0.6, "lonely": -0.7, "lost": -0.4,
	"mad": -0.6, "miserable": -0.9, "negative": -0.5, "pain": -0.6,
	"sad": -0.7, "scared": -0.6, "sick": -0.5, "stress": -0.6,
	"stressed": -0.6, "terrible": -0.9, "tired": -0.4, "ugly": -0.6,
	"unhappy": -0.7, "upset": -0.7, "worried": -0.6, "worse": -0.7,
	"worst": -0.9,
}

// negations flip the sign of the following sentiment word.
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "n't": {}, "don't": {}, "didn't": {},
	"doesn't": {}, "isn't": {}, "wasn't": {}, "won't": {}, "can't": {},
	"couldn't": {}, "shouldn't": {}, "wouldn't": {}, "hardly": {},
}

// lexiconPolarity estimates the overall polarity of text in [-1, 1] by
// averaging matched word weights, flipping the weight of a word preceded by
// a negation. Text without any sentiment-bearing words scores 0.
func lexiconPolarity(text string) float64 {
	tokens := Tokenize(text)
	var sum float64
	var n int
	negate := false
	for _, tok := range tokens {
		if _, ok := negations[tok]; ok {
			negate = true
			continue
		}
		if strings.HasSuffix(tok, "n't") {
			negate = true
			continue
		}
		if w, ok := polarity[tok]; ok {
			if negate {
				w = -w
			}
			sum += w
			n++
		}
		negate = false
	}
	if n == 0 {
		return 0
	}
	p := sum / float64(n)
	if p > 1 {
		p = 1
	} else if p < -1 {
		p = -1
	}
	return p
}

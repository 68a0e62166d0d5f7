package sweep

import (
	"math"
	"strconv"
	"strings"
)

// Labels returns the file name label of every threshold, in input order.
//
// A label is the integer part of the threshold, zero-padded to the digit
// width of the integer part of the largest threshold, so that file names
// sort in numeric order. Thresholds whose integer parts collide get the
// fewest decimals that tell them apart:
//
//	Labels([]float64{120, 35, 7})      // ["120", "035", "007"]
//	Labels([]float64{12.5, 12.25, 3})  // ["12.5", "12.2", "03"]
func Labels(thresholds []float64) []string {
	if len(thresholds) == 0 {
		return nil
	}
	hi := thresholds[0]
	for _, t := range thresholds[1:] {
		if t > hi {
			hi = t
		}
	}
	width := len(intPart(hi))

	groups := make(map[string][]int)
	for i, t := range thresholds {
		k := intPart(t)
		groups[k] = append(groups[k], i)
	}

	labels := make([]string, len(thresholds))
	for k, idx := range groups {
		if len(idx) == 1 {
			labels[idx[0]] = zfill(k, width)
			continue
		}
		digits := decimalsFor(thresholds, idx)
		for _, i := range idx {
			labels[i] = withDecimals(thresholds[i], digits, width)
		}
	}
	return labels
}

// intPart formats the threshold truncated toward zero.
func intPart(t float64) string {
	return strconv.FormatInt(int64(math.Trunc(t)), 10)
}

// fraction returns the decimal digits of t after the point, without
// rounding, or "" for integral values.
func fraction(t float64) string {
	s := strconv.FormatFloat(math.Abs(t), 'f', -1, 64)
	_, frac, _ := strings.Cut(s, ".")
	return frac
}

// decimalsFor returns the smallest number of decimals that gives every
// threshold in idx a distinct label.
func decimalsFor(thresholds []float64, idx []int) int {
	longest := 0
	for _, i := range idx {
		longest = max(longest, len(fraction(thresholds[i])))
	}
	for d := 1; d < longest; d++ {
		seen := make(map[string]bool, len(idx))
		unique := true
		for _, i := range idx {
			l := withDecimals(thresholds[i], d, 0)
			if seen[l] {
				unique = false
				break
			}
			seen[l] = true
		}
		if unique {
			return d
		}
	}
	return max(longest, 1)
}

func withDecimals(t float64, digits, width int) string {
	ip := intPart(t)
	if t < 0 && ip == "0" {
		ip = "-0"
	}
	frac := fraction(t)
	if len(frac) < digits {
		frac += strings.Repeat("0", digits-len(frac))
	}
	return zfill(ip, width) + "." + frac[:digits]
}

// zfill left-pads s with zeros to width, keeping a leading sign in front.
func zfill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := strings.Repeat("0", width-len(s))
	if s != "" && (s[0] == '-' || s[0] == '+') {
		return s[:1] + pad + s[1:]
	}
	return pad + s
}

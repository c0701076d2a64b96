package patterns

import "fmt"

var monthsEN = [13]string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

var monthsDE = [13]string{"", "Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember"}

var monthsFR = [13]string{"", "janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

func shortMonth(name string) string {
	if len(name) <= 3 {
		return name
	}
	return name[:3]
}

// localeDates renders a day-precision date in the spellings a page in the
// given language is likely to use. The ISO form is always first; languages
// without a dedicated table get generic numeric separators.
func localeDates(language, year string, month, day int) []string {
	out := []string{fmt.Sprintf("%s-%02d-%02d", year, month, day)}
	switch language {
	case "en":
		long := monthName(monthsEN, month)
		out = append(out,
			fmt.Sprintf("%s %d, %s", long, day, year),
			fmt.Sprintf("%s %d, %s", shortMonth(long), day, year),
		)
	case "de":
		long := monthName(monthsDE, month)
		short := shortMonth(long)
		out = append(out,
			fmt.Sprintf("%d. %s %s", day, long, year),
			fmt.Sprintf("%d. %s %s", day, short, year),
			fmt.Sprintf("%02d. %s %s", day, long, year),
			fmt.Sprintf("%02d. %s %s", day, short, year),
			fmt.Sprintf("%d. %d. %s", day, month, year),
			fmt.Sprintf("%d.%d.%s", day, month, year),
			fmt.Sprintf("%02d. %02d. %s", day, month, year),
			fmt.Sprintf("%02d.%02d.%s", day, month, year),
		)
	case "fr":
		out = append(out, fmt.Sprintf("%d %s %s", day, monthName(monthsFR, month), year))
	default:
		out = append(out,
			fmt.Sprintf("%d. %d. %s", day, month, year),
			fmt.Sprintf("%d.%d.%s", day, month, year),
			fmt.Sprintf("%d/%d/%s", day, month, year),
			fmt.Sprintf("%02d. %02d. %s", day, month, year),
			fmt.Sprintf("%02d.%02d.%s", day, month, year),
			fmt.Sprintf("%02d/%02d/%s", day, month, year),
		)
	}
	return out
}

func monthName(table [13]string, month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return table[month]
}

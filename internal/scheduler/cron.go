package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser — парсер cron-выражений (5 полей, как в node-cron без секунд).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Entry — расписание, полученное от сервера.
type Entry struct {
	// Spec — строка расписания как её вернул сервер.
	Spec string
	// Next — следующее время срабатывания; нулевое, если Spec не cron.
	Next time.Time
	// Err — ошибка разбора Spec.
	Err error
}

// Valid возвращает true, если Spec удалось разобрать.
func (e Entry) Valid() bool {
	return e.Err == nil
}

// NextRun вычисляет следующее время срабатывания cron-выражения после from.
func NextRun(spec string, from time.Time) (time.Time, error) {
	schedule, err := cronParser.Parse(strings.TrimSpace(spec))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron expression %q: %w", spec, err)
	}
	return schedule.Next(from), nil
}

// Describe разбирает список расписаний и вычисляет время следующего запуска
// для каждого из них в часовом поясе loc.
//
// Сервер может вернуть произвольные строки, поэтому ошибка одного
// расписания не мешает остальным.
func Describe(specs []string, from time.Time, loc *time.Location) []Entry {
	if loc == nil {
		loc = time.Local
	}

	entries := make([]Entry, 0, len(specs))
	for _, spec := range specs {
		next, err := NextRun(spec, from.In(loc))
		entries = append(entries, Entry{Spec: spec, Next: next, Err: err})
	}
	return entries
}

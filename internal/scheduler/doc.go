// Package scheduler вычисляет время следующего запуска для cron-выражений,
// которые возвращает планировщик сервера бота.
//
// Сервер сам ведёт расписание; здесь только разбор выражений для вывода:
//
//	for _, e := range scheduler.Describe(specs, time.Now(), time.Local) {
//	    if e.Valid() {
//	        fmt.Println(e.Spec, "→", e.Next.Format(time.DateTime))
//	    }
//	}
//
// Поддерживаются стандартные пять полей и дескрипторы (@daily, @hourly).
package scheduler

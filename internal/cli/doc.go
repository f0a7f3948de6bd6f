// Package cli реализует инструмент командной строки для сервера AI Business Bot.
//
// # Обзор
//
// CLI — клиентская утилита для демонстрации и обслуживания бота.
// Вся логика (сбор новостей, контент-план, публикация, планировщик)
// живёт на сервере; CLI только вызывает его REST API и печатает результат.
//
// # Ключевые компоненты
//
// ## Actions
//
// Одно действие на команду: health, status, stats, queue, collect, publish,
// run, scheduler, info. Ошибки запросов печатаются строкой "❌ ..." и не
// прерывают вызывающий сценарий.
//
// После POST-триггеров (collect, publish, run) действие ждёт фиксированную
// паузу и перезапрашивает статистику: сервер не сообщает о завершении
// фоновой работы.
//
// ## Monitor и Workflow
//
// Monitor — бесконечный цикл опроса статистики с автоматическим сбором
// новостей при пустой очереди. Workflow — фиксированный сценарий из
// нескольких действий.
//
// ## Dispatcher
//
// Таблица Commands сопоставляет имя команды и действие. Без аргументов
// выводится справка, неизвестная команда даёт сообщение об ошибке;
// в обоих случаях сетевых запросов нет.
//
//	aibot-cli stats
//	aibot-cli --api-url http://bot:3000 workflow
//	aibot-cli monitor --interval 1m --metrics-addr :9100
package cli

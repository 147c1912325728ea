// Package mappers provides implementations of the Mapper interface for
// each supported transaction-set type. Each mapper walks the
// transaction-body segments once, in order, dispatching on segment id
// to build its typed message body.
//
// Mappers are registered with the MessageTypeRegistry at startup.
package mappers

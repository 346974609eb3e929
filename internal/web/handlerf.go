// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"fmt"
	"net/http"
	"reflect"
)

// internal type for user defined handlers. Handlers of slightly differing
// signatures are accepted but adapted at registration to match this one.
type parametrizedHandler func(ctx *Context, args ...string) error

// Generic handler type with route values, if any, already bound. Also
// represents handlers that are not user defined: 404, 405 and wrapped
// handlers. Exported to allow external definition of wrappers.
type SimpleHandler func(*Context) error

var (
	errType     = reflect.TypeOf((*error)(nil)).Elem()
	contextType = reflect.TypeOf((*Context)(nil))
	stringType  = reflect.TypeOf("")
)

// Bind route values to a handler
func closeHandler(h parametrizedHandler, args ...string) SimpleHandler {
	return func(ctx *Context) error {
		return h(ctx, args...)
	}
}

// Shape of a user handler as far as the adapter is concerned
type handlerShape struct {
	wantsContext bool
	nargs        int
	// index of the value to write to the client, -1 if none
	dataOut int
	// index of the returned error, -1 if none
	errOut int
}

func inspectHandler(t reflect.Type) (handlerShape, error) {
	shape := handlerShape{dataOut: -1, errOut: -1}
	if t.Kind() != reflect.Func {
		return shape, fmt.Errorf("handler is a %s, not a function", t.Kind())
	}
	in := 0
	if t.NumIn() > 0 && t.In(0) == contextType {
		shape.wantsContext = true
		in = 1
	}
	for i := in; i < t.NumIn(); i++ {
		if t.In(i) != stringType {
			return shape, fmt.Errorf("handler argument %d is %s, want string", i, t.In(i))
		}
	}
	shape.nargs = t.NumIn() - in
	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0).Implements(errType) {
			shape.errOut = 0
		} else {
			shape.dataOut = 0
		}
	case 2:
		if !t.Out(1).Implements(errType) {
			return shape, fmt.Errorf("second return value is %s, want error", t.Out(1))
		}
		shape.dataOut, shape.errOut = 0, 1
	default:
		return shape, fmt.Errorf("handler returns %d values", t.NumOut())
	}
	return shape, nil
}

// Beat the supplied handler into a uniform signature. Accepted forms:
//
//   - any http.Handler
//   - func([*Context,] string...) [T] [error]
//
// where T is string, []byte, io.Reader or io.WriterTo. A non-nil T is written
// to the client unless the error is non-nil. nargs is the number of values the
// route binds; the handler must accept exactly that many strings.
func fixHandlerSignature(f interface{}, nargs int) (parametrizedHandler, error) {
	if httph, ok := f.(http.Handler); ok {
		return func(ctx *Context, args ...string) error {
			httph.ServeHTTP(ctx, ctx.Request)
			return nil
		}, nil
	}
	fv := reflect.ValueOf(f)
	if !fv.IsValid() {
		return nil, fmt.Errorf("nil handler")
	}
	shape, err := inspectHandler(fv.Type())
	if err != nil {
		return nil, err
	}
	if shape.nargs != nargs {
		return nil, fmt.Errorf("handler takes %d string arguments, route binds %d", shape.nargs, nargs)
	}
	return func(ctx *Context, args ...string) error {
		in := make([]reflect.Value, 0, len(args)+1)
		if shape.wantsContext {
			in = append(in, reflect.ValueOf(ctx))
		}
		for _, arg := range args {
			in = append(in, reflect.ValueOf(arg))
		}
		out := fv.Call(in)
		if shape.errOut >= 0 {
			if err, _ := out[shape.errOut].Interface().(error); err != nil {
				return err
			}
		}
		if shape.dataOut >= 0 {
			if data := out[shape.dataOut].Interface(); data != nil {
				return ctx.writeAnything(data)
			}
		}
		return nil
	}, nil
}

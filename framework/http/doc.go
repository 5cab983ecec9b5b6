// Package http provides JSON request and response helpers and the middleware
// that ties HTTP requests to container request generations.
//
//	res := gohttp.NewResponse(w)
//	users, err := container.Resolve[*services.UserService](app, services.UserServiceKey)
//	if err != nil {
//	    res.ResolutionError(err)  // 500 {"message": ..., "kind": "UNRESOLVABLE_DEPENDENCY"}
//	    return
//	}
//	res.Success(users.GetUser(1)) // 200 {"data": {...}}
package http

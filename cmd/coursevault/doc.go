// Command coursevault runs and administers the CourseVault API.
//
// Run from the project directory so config/app.json and .env are found:
//
//	coursevault serve        # start the HTTP server
//	coursevault route:list   # list API routes
//	coursevault db:index     # create MongoDB indexes
//	coursevault seed         # insert a demo admin and courses
package main

/*

Package logger provides logging functionality to a waypoint server by defining the required behavior in [Logger]
and providing an implementation of it with [WaypointLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [WaypointLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*WaypointLogger.Warn], [*WaypointLogger.Error], and [*WaypointLogger.Fatal] produce messages.

# WaypointLogger

Log messages emitted by [WaypointLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2024/04/28 15:55:21 [INFO] api/users.go:43 'user created' log_context: {"request":{"method":"POST","path":"/users"}}

The log context is a JSON-encoded [*LogContext].
Request data in it is masked: credentials headers and any "password" value never reach the log.

[WithFile] additionally writes logs to a file rotated by lumberjack.

# SentryLogger

When SENTRY_DSN is set, [New] returns a [SentryLogger].
Warnings and worse carrying a [LogContext.Error] are reported to Sentry,
tagged with the method and path of the [LogContext.Request].

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger

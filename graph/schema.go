package graph

// Schema is the GraphQL schema served by the API.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		me: User
		user(username: String!): User
		users(query: String): [User!]!
		followers(userId: Int!): [User!]!
		following(userId: Int!): [User!]!
		post(id: Int!): Post
		posts: [Post!]!
		feed: [Post!]!
	}

	type Mutation {
		register(input: RegisterInput!): AuthPayload!
		login(input: LoginInput!): AuthPayload!
		updateProfile(input: UpdateProfileInput!): User!
		followUser(userId: Int!): FollowResult!
		unfollowUser(userId: Int!): FollowResult!
		createPost(input: CreatePostInput!): Post!
		deletePost(id: Int!): Boolean!
		likePost(id: Int!): LikeResult!
		unlikePost(id: Int!): LikeResult!
	}

	type User {
		id: Int!
		email: String!
		username: String!
		name: String
		bio: String
		createdAt: String!
		updatedAt: String!
		posts: [Post!]!
		followersCount: Int!
		followingCount: Int!
		isFollowing: Boolean
	}

	type Post {
		id: Int!
		content: String!
		createdAt: String!
		updatedAt: String!
		author: User!
		likesCount: Int!
		isLiked: Boolean
	}

	type AuthPayload {
		token: String!
		user: User!
	}

	type FollowResult {
		success: Boolean!
		message: String!
		isFollowing: Boolean!
	}

	type LikeResult {
		success: Boolean!
		message: String!
		isLiked: Boolean!
	}

	input RegisterInput {
		email: String!
		username: String!
		password: String!
		name: String
	}

	input LoginInput {
		email: String!
		password: String!
	}

	input UpdateProfileInput {
		name: String
		bio: String
	}

	input CreatePostInput {
		content: String!
	}
`
